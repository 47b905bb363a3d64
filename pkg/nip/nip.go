// Package nip valida identificadores fiscales polacos: NIP (10 dígitos) y REGON (9 o 14).
package nip

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid identificador con formato o dígito de control incorrecto.
var ErrInvalid = errors.New("identificador fiscal inválido")

// pesos del dígito de control NIP, aplicados a los 9 primeros dígitos.
var nipWeights = [9]int{6, 5, 7, 2, 3, 4, 5, 6, 7}

var (
	regon9Weights  = [8]int{8, 9, 2, 3, 4, 5, 6, 7}
	regon14Weights = [13]int{2, 4, 8, 5, 0, 9, 7, 3, 6, 1, 2, 4, 8}
)

// Normalize valida el NIP y lo devuelve solo con dígitos.
// Acepta "526-025-02-74", "526 025 02 74" y el prefijo UE "PL5260250274".
func Normalize(s string) (string, error) {
	digits, err := extractDigits(strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "PL"))
	if err != nil {
		return "", fmt.Errorf("%w: NIP %q: %v", ErrInvalid, s, err)
	}
	if len(digits) != 10 {
		return "", fmt.Errorf("%w: NIP debe tener 10 dígitos, se recibieron %d", ErrInvalid, len(digits))
	}
	// Un resto 10 no tiene dígito posible: ese NIP no se emite.
	check := weightedSum(digits[:9], nipWeights[:]) % 11
	if check == 10 || check != int(digits[9]-'0') {
		return "", fmt.Errorf("%w: dígito de control del NIP %s incorrecto", ErrInvalid, digits)
	}
	return digits, nil
}

// Validate comprueba el NIP sin devolverlo normalizado.
func Validate(s string) error {
	_, err := Normalize(s)
	return err
}

// ValidateREGON comprueba un REGON de 9 dígitos (empresa) o 14 (unidad local).
func ValidateREGON(s string) error {
	digits, err := extractDigits(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("%w: REGON %q: %v", ErrInvalid, s, err)
	}
	var weights []int
	switch len(digits) {
	case 9:
		weights = regon9Weights[:]
	case 14:
		if err := ValidateREGON(digits[:9]); err != nil {
			return err
		}
		weights = regon14Weights[:]
	default:
		return fmt.Errorf("%w: REGON debe tener 9 o 14 dígitos, se recibieron %d", ErrInvalid, len(digits))
	}
	check := weightedSum(digits[:len(weights)], weights) % 11
	if check == 10 {
		check = 0
	}
	if check != int(digits[len(digits)-1]-'0') {
		return fmt.Errorf("%w: dígito de control del REGON %s incorrecto", ErrInvalid, digits)
	}
	return nil
}

func weightedSum(digits string, weights []int) int {
	var sum int
	for i, w := range weights {
		sum += int(digits[i]-'0') * w
	}
	return sum
}

// extractDigits quita espacios y guiones; cualquier otro carácter es un error.
func extractDigits(s string) (string, error) {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-':
		default:
			return "", fmt.Errorf("carácter %q no permitido", r)
		}
	}
	return b.String(), nil
}
