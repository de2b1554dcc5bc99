package logic

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseBench reads a network in the Berkeley bench format: INPUT(x) and
// OUTPUT(y) declarations plus gate lines of the form
//
//	y = AND(a, b, ...)
//
// Supported gate operators are AND, OR, NAND, NOR, XOR, XNOR, NOT and BUFF;
// gates with more than two operands are folded left. Lines may appear in any
// order; unresolvable references (including cycles) fail with
// ErrInvalidLogicNetwork.
func ParseBench(r io.Reader) (*Network, error) {
	type gateLine struct {
		name string
		op   string
		args []string
	}

	n := New()
	signals := make(map[string]Signal)
	var gates []gateLine
	var outputs []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case strings.HasPrefix(line, "INPUT(") && strings.HasSuffix(line, ")"):
			name := strings.TrimSpace(line[len("INPUT(") : len(line)-1])
			if _, ok := signals[name]; ok {
				return nil, fmt.Errorf("%w: duplicate signal %q", ErrInvalidLogicNetwork, name)
			}
			signals[name] = n.AddInput()
		case strings.HasPrefix(line, "OUTPUT(") && strings.HasSuffix(line, ")"):
			outputs = append(outputs, strings.TrimSpace(line[len("OUTPUT(") : len(line)-1]))
		default:
			name, rhs, found := strings.Cut(line, "=")
			if !found {
				return nil, fmt.Errorf("%w: unparsable line %q", ErrInvalidLogicNetwork, line)
			}
			rhs = strings.TrimSpace(rhs)
			open := strings.IndexByte(rhs, '(')
			if open < 0 || !strings.HasSuffix(rhs, ")") {
				return nil, fmt.Errorf("%w: unparsable line %q", ErrInvalidLogicNetwork, line)
			}
			g := gateLine{
				name: strings.TrimSpace(name),
				op:   strings.ToUpper(strings.TrimSpace(rhs[:open])),
			}
			for _, arg := range strings.Split(rhs[open+1:len(rhs)-1], ",") {
				g.args = append(g.args, strings.TrimSpace(arg))
			}
			gates = append(gates, g)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// gate lines may be out of topological order; resolve iteratively
	pending := gates
	for len(pending) > 0 {
		var stuck []gateLine
		progress := false
		for _, g := range pending {
			args := make([]Signal, len(g.args))
			ok := true
			for i, a := range g.args {
				s, found := signals[a]
				if !found {
					ok = false
					break
				}
				args[i] = s
			}
			if !ok {
				stuck = append(stuck, g)
				continue
			}
			s, err := buildBenchGate(n, g.op, args)
			if err != nil {
				return nil, err
			}
			if _, dup := signals[g.name]; dup {
				return nil, fmt.Errorf("%w: duplicate signal %q", ErrInvalidLogicNetwork, g.name)
			}
			signals[g.name] = s
			progress = true
		}
		if !progress {
			return nil, fmt.Errorf("%w: unresolvable signals (cycle or missing definition)", ErrInvalidLogicNetwork)
		}
		pending = stuck
	}

	for _, name := range outputs {
		s, ok := signals[name]
		if !ok {
			return nil, fmt.Errorf("%w: undefined output %q", ErrInvalidLogicNetwork, name)
		}
		n.AddOutput(s)
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}

func buildBenchGate(n *Network, op string, args []Signal) (Signal, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: gate %s with no operands", ErrInvalidLogicNetwork, op)
	}
	switch op {
	case "NOT":
		if len(args) != 1 {
			return 0, fmt.Errorf("%w: NOT takes one operand", ErrInvalidLogicNetwork)
		}
		return args[0].Not(), nil
	case "BUFF":
		if len(args) != 1 {
			return 0, fmt.Errorf("%w: BUFF takes one operand", ErrInvalidLogicNetwork)
		}
		return args[0], nil
	case "AND", "NAND":
		s := args[0]
		for _, a := range args[1:] {
			s = n.AddAnd(s, a)
		}
		if op == "NAND" {
			s = s.Not()
		}
		return s, nil
	case "OR", "NOR":
		s := args[0]
		for _, a := range args[1:] {
			s = n.AddOr(s, a)
		}
		if op == "NOR" {
			s = s.Not()
		}
		return s, nil
	case "XOR", "XNOR":
		s := args[0]
		for _, a := range args[1:] {
			s = n.AddXor(s, a)
		}
		if op == "XNOR" {
			s = s.Not()
		}
		return s, nil
	default:
		return 0, fmt.Errorf("%w: unsupported gate operator %q", ErrInvalidLogicNetwork, op)
	}
}
