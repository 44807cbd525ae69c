package models

import (
	"fmt"
	"strings"
)

type OptionKind int

const (
	Call OptionKind = iota
	Put
)

func (k OptionKind) String() string {
	switch k {
	case Call:
		return "call"
	case Put:
		return "put"
	default:
		return fmt.Sprintf("OptionKind(%d)", int(k))
	}
}

// ParseOptionKind accepts "call"/"put" in any case, plus the single letters c/p.
func ParseOptionKind(s string) (OptionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c":
		return Call, nil
	case "put", "p":
		return Put, nil
	}
	return 0, fmt.Errorf("unknown option kind %q: %w", s, ErrInvalidInput)
}

// Model is the pricing convention a contract is quoted under.
type Model int

const (
	BlackScholes Model = iota // spot with continuous dividend yield
	Black76                   // forward, carry embedded in F
)

func (m Model) String() string {
	switch m {
	case BlackScholes:
		return "black-scholes"
	case Black76:
		return "black-76"
	default:
		return fmt.Sprintf("Model(%d)", int(m))
	}
}

func ParseModel(s string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bs", "black-scholes", "blackscholes":
		return BlackScholes, nil
	case "b76", "black-76", "black76":
		return Black76, nil
	}
	return 0, fmt.Errorf("unknown model %q: %w", s, ErrInvalidInput)
}

// StructureKind names the shape of a multi-leg structure.
type StructureKind string

const (
	ButterflyLong  StructureKind = "Butterfly Long"
	ButterflyShort StructureKind = "Butterfly Short"
	BullPut        StructureKind = "Bull Put"
	BearCall       StructureKind = "Bear Call"
	Straddle       StructureKind = "Straddle"
)

// Greeks is a snapshot of a price and its first-order sensitivities.
type Greeks struct {
	Price float64 `json:"price"`
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Vega  float64 `json:"vega"`
	Theta float64 `json:"theta"`
	Rho   float64 `json:"rho"`
}
