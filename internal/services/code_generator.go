package services

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const digits = "0123456789"

// Code — одноразовый код входа: читаемое значение для письма
// и bcrypt-хэш для БД. Сам код нигде не сохраняется.
type Code struct {
	Readable string
	Hashed   string
}

// CodeGenerator выдаёт короткие цифровые коды из crypto/rand.
// Код — единственный секрет на пути входа, поэтому math/rand здесь
// не годится.
type CodeGenerator struct {
	Length int // 0 — берём 6
	Cost   int // bcrypt cost; 0 — bcrypt.DefaultCost (в тестах MinCost)
}

func (g CodeGenerator) Generate() (Code, error) {
	readable, err := g.randomDigits()
	if err != nil {
		return Code{}, fmt.Errorf("code generate: %w", err)
	}
	cost := g.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(readable), cost)
	if err != nil {
		return Code{}, fmt.Errorf("code hash: %w", err)
	}
	return Code{Readable: readable, Hashed: string(hash)}, nil
}

// randomDigits — случайная строка цифр фиксированной длины. Остаток от
// деления байта на 10 смещён, поэтому добираем через резервуар, чтобы
// каждая цифра была равновероятна.
func (g CodeGenerator) randomDigits() (string, error) {
	n := g.Length
	if n <= 0 {
		n = 6
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	c := len(digits)
	j := 0
	for i := 0; i < n; i++ {
		bb := int(b[i])
		b[i] = digits[(j+bb)%c]
		j += (c + (c-bb)%c) % c
	}
	return string(b), nil
}
