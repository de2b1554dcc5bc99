package circuit

// Stats summarizes a circuit's gate usage.
type Stats struct {
	NbH   int
	NbX   int // uncontrolled NOT
	NbCX  int // singly-controlled NOT
	NbMCX int // NOT with two or more controls
	NbRz  int
}

// Stats walks the gate list and returns per-kind gate counts.
func (c *Circuit) Stats() Stats {
	var s Stats
	for _, g := range c.gates {
		switch g.Kind {
		case H:
			s.NbH++
		case Rz:
			s.NbRz++
		case X:
			switch len(g.Controls) {
			case 0:
				s.NbX++
			case 1:
				s.NbCX++
			default:
				s.NbMCX++
			}
		}
	}
	return s
}
