package utils

import (
	"strconv"
	"strings"
)

// NextCode calcule l'identifiant séquentiel suivant à partir du précédent.
// Un code est composé d'un préfixe alphabétique suivi d'une suite de
// chiffres : "PROD0007" → "PROD0008", "FPRD9999" → "FPRD10000".
// La longueur de la partie numérique est conservée (zéros à gauche), sauf
// en cas de retenue où elle s'allonge naturellement.
//
// Purement déterministe, aucun accès externe : l'appelant est responsable
// de lire le dernier code en base avant d'appeler NextCode.
func NextCode(code string) string {
	// 1. Extraire les lettres initiales
	prefix := code[:prefixLen(code)]

	// 2. Extraire la première suite de chiffres ("0" par défaut)
	numberPart := firstDigitRun(code)

	// 3. Incrémenter de un
	n, _ := strconv.Atoi(numberPart)
	next := strconv.Itoa(n + 1)

	// 4. Re-remplir avec des zéros selon la longueur d'origine
	if len(next) < len(numberPart) {
		next = strings.Repeat("0", len(numberPart)-len(next)) + next
	}

	return prefix + next
}

func prefixLen(code string) int {
	for i, r := range code {
		if !isLetter(r) {
			return i
		}
	}
	return len(code)
}

func firstDigitRun(code string) string {
	start := -1
	for i, r := range code {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return code[start:i]
		}
	}
	if start >= 0 {
		return code[start:]
	}
	return "0"
}

func isLetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}
