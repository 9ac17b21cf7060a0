package rijndael

import (
	"fmt"
	"io"

	hex "github.com/tmthrgd/go-hex"
)

// Step names used in a Trace, following the labels of FIPS-197 Appendix B/C.
const (
	StepInput    = "input"
	StepStart    = "start"
	StepSubBytes = "s_box"
	StepShift    = "s_row"
	StepMix      = "m_col"
	StepKey      = "k_sch"
	StepOutput   = "output"

	StepInvInput    = "iinput"
	StepInvStart    = "istart"
	StepInvSubBytes = "is_box"
	StepInvShift    = "is_row"
	StepInvKey      = "ik_sch"
	StepInvAdd      = "ik_add"
	StepInvOutput   = "ioutput"
)

// TraceStep is the state of the cipher at one point of a block operation.
type TraceStep struct {
	Round int    `json:"round"`
	Step  string `json:"step"`
	State State  `json:"-"`
	Hex   string `json:"state"`
}

// Trace records every intermediate state of one block operation.
type Trace []TraceStep

func (t *Trace) add(round int, step string, s *State) {
	*t = append(*t, TraceStep{
		Round: round,
		Step:  step,
		State: *s,
		Hex:   hex.EncodeToString(s[:]),
	})
}

// EncryptBlockTrace behaves like EncryptBlock and also returns the state at
// the start of each round and after every transform.
func EncryptBlockTrace(in Block, ks *Schedule) (Block, Trace) {
	tr := make(Trace, 0, 5*Rounds+2)
	s := State(in)

	tr.add(0, StepInput, &s)
	tr.add(0, StepKey, (*State)(&ks[0]))
	AddRoundKey(&s, &ks[0])

	for r := 1; r <= Rounds; r++ {
		tr.add(r, StepStart, &s)
		SubBytes(&s)
		tr.add(r, StepSubBytes, &s)
		ShiftRows(&s)
		tr.add(r, StepShift, &s)
		if r != Rounds {
			MixColumns(&s)
			tr.add(r, StepMix, &s)
		}
		tr.add(r, StepKey, (*State)(&ks[r]))
		AddRoundKey(&s, &ks[r])
	}
	tr.add(Rounds, StepOutput, &s)

	return Block(s), tr
}

// DecryptBlockTrace behaves like DecryptBlock and records the inverse cipher
// listing with the FIPS-197 Appendix C labels (iinput, istart, ioutput).
// Round numbers count up from 0.
func DecryptBlockTrace(in Block, ks *Schedule) (Block, Trace) {
	tr := make(Trace, 0, 5*Rounds+2)
	s := State(in)

	tr.add(0, StepInvInput, &s)
	tr.add(0, StepInvKey, (*State)(&ks[Rounds]))
	AddRoundKey(&s, &ks[Rounds])

	for i := 1; i <= Rounds; i++ {
		r := Rounds - i
		tr.add(i, StepInvStart, &s)
		InvShiftRows(&s)
		tr.add(i, StepInvShift, &s)
		InvSubBytes(&s)
		tr.add(i, StepInvSubBytes, &s)
		tr.add(i, StepInvKey, (*State)(&ks[r]))
		AddRoundKey(&s, &ks[r])
		if r != 0 {
			tr.add(i, StepInvAdd, &s)
			InvMixColumns(&s)
		}
	}
	tr.add(Rounds, StepInvOutput, &s)

	return Block(s), tr
}

// WriteTo writes the trace in the "round[ 1].s_box  <hex>" layout.
func (t Trace) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, st := range t {
		m, err := fmt.Fprintf(w, "round[%2d].%-7s %s\n", st.Round, st.Step, st.Hex)
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
