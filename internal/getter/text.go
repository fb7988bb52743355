package getter

import (
	"strconv"
	"strings"

	"github.com/dshills/stormcad/internal/geom"
)

type textHooks struct {
	g *Getter[string]
}

// NewText requests free text. Space is an ordinary character and the jig
// is called with the text after every keystroke.
func NewText(host Host, opts Options[string]) *Getter[string] {
	h := &textHooks{}
	h.g = newGetter(host, opts, Acceptor[string](h))
	return h.g
}

func (h *textHooks) SpaceAccepts() bool { return false }

func (h *textHooks) TextChanged(text string) {
	h.g.opts.jig(text)
}

func (h *textHooks) AcceptCoordsInput(geom.Point) (string, bool, error) {
	return "", false, invalid(msgNoCoordinates)
}

func (h *textHooks) AcceptTextInput(text string) (string, bool, error) {
	return text, true, nil
}

// NumberOptions constrains the sign of numeric input.
type NumberOptions struct {
	AllowNegative bool
	AllowPositive bool
	AllowZero     bool
}

// AnyNumber accepts every value.
func AnyNumber() NumberOptions {
	return NumberOptions{AllowNegative: true, AllowPositive: true, AllowZero: true}
}

// PositiveNumber accepts values greater than zero.
func PositiveNumber() NumberOptions {
	return NumberOptions{AllowPositive: true}
}

// Messages for rejected numbers.
const (
	MsgNegativeNotAllowed = "Negative numbers are not allowed"
	MsgPositiveNotAllowed = "Positive numbers are not allowed"
	MsgZeroNotAllowed     = "Zero is not allowed"
	MsgInvalidInteger     = "Invalid integer"
	MsgInvalidNumber      = "Invalid number"
)

func (n NumberOptions) check(v float64) error {
	switch {
	case v < 0 && !n.AllowNegative:
		return invalid(MsgNegativeNotAllowed)
	case v > 0 && !n.AllowPositive:
		return invalid(MsgPositiveNotAllowed)
	case v == 0 && !n.AllowZero:
		return invalid(MsgZeroNotAllowed)
	}
	return nil
}

type numberHooks[T int | float64] struct {
	g     *Getter[T]
	num   NumberOptions
	parse func(string) (T, error)
}

func (h *numberHooks[T]) AcceptCoordsInput(geom.Point) (T, bool, error) {
	return 0, false, invalid(msgNoCoordinates)
}

func (h *numberHooks[T]) AcceptTextInput(text string) (T, bool, error) {
	v, err := h.parse(text)
	if err != nil {
		return 0, false, err
	}
	if err := h.num.check(float64(v)); err != nil {
		return 0, false, err
	}
	return v, true, nil
}

func (h *numberHooks[T]) TextChanged(text string) {
	if v, _, err := h.AcceptTextInput(text); err == nil {
		h.g.opts.jig(v)
	}
}

// NewInt requests an integer constrained by num.
func NewInt(host Host, opts Options[int], num NumberOptions) *Getter[int] {
	h := &numberHooks[int]{num: num, parse: parseInt}
	h.g = newGetter(host, opts, Acceptor[int](h))
	return h.g
}

// NewFloat requests a number constrained by num.
func NewFloat(host Host, opts Options[float64], num NumberOptions) *Getter[float64] {
	h := &numberHooks[float64]{num: num, parse: parseFloat}
	h.g = newGetter(host, opts, Acceptor[float64](h))
	return h.g
}

func parseInt(text string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, invalid(MsgInvalidInteger)
	}
	return v, nil
}

func parseFloat(text string) (float64, error) {
	v, err := geom.ParseFloat(text)
	if err != nil {
		return 0, invalid(MsgInvalidNumber)
	}
	return v, nil
}
