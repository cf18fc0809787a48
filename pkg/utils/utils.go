package utils

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// brPrinter форматирует числа по правилам pt-BR: "1.234,56"
var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// Round2 округляет число до 2 знаков после запятой
func Round2(value float64) float64 {
	if !IsFinite(value) {
		return value
	}
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

// IsFinite проверяет, является ли число конечным
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// FormatAmount форматирует сумму с двумя знаками после запятой и разделителем тысяч
func FormatAmount(value float64) string {
	if !IsFinite(value) {
		value = 0
	}
	return brPrinter.Sprintf("%.2f", Round2(value))
}

// FormatBRL форматирует сумму как валюту: "R$ 1.234,56"
func FormatBRL(value float64) string {
	if value < 0 {
		return "-R$ " + FormatAmount(-value)
	}
	return "R$ " + FormatAmount(value)
}

// CentsToAmount переводит целое число центов в сумму без потери точности
func CentsToAmount(cents int64) float64 {
	return decimal.New(cents, -2).InexactFloat64()
}
