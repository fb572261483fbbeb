// Package models defines the currency reference data for the rates bot.
package models

import "strings"

// DefaultBaseCurrency is the reference currency rates are quoted against.
const DefaultBaseCurrency = "RUB"

// CurrencyCodeLength is the length of an alphabetic ISO 4217 code.
const CurrencyCodeLength = 3

// SupportedCurrencies lists all currency codes the rate provider serves.
var SupportedCurrencies = map[string]struct{}{
	"AED": {}, "ALL": {}, "AMD": {}, "ARS": {}, "AUD": {}, "BDT": {}, "BGN": {},
	"BHD": {}, "BIF": {}, "BND": {}, "BOB": {}, "BRL": {}, "BSD": {}, "BWP": {},
	"BYR": {}, "CAD": {}, "CDF": {}, "CHF": {}, "CLP": {}, "CNY": {}, "COP": {},
	"CRC": {}, "CVE": {}, "CZK": {}, "DJF": {}, "DKK": {}, "DOP": {}, "DZD": {},
	"EGP": {}, "ETB": {}, "EUR": {}, "FJD": {}, "GBP": {}, "GEL": {}, "GMD": {},
	"GNF": {}, "GTQ": {}, "GYD": {}, "HKD": {}, "HNL": {}, "HTG": {}, "HUF": {},
	"IDR": {}, "ILS": {}, "INR": {}, "IQD": {}, "IRR": {}, "ISK": {}, "JOD": {},
	"JPY": {}, "KES": {}, "KGS": {}, "KHR": {}, "KMF": {}, "KRW": {}, "KZT": {},
	"LAK": {}, "LBP": {}, "LKR": {}, "LRD": {}, "LSL": {}, "LYD": {}, "MAD": {},
	"MDL": {}, "MKD": {}, "MMK": {}, "MNT": {}, "MOP": {}, "MUR": {}, "MVR": {},
	"MWK": {}, "MXN": {}, "MYR": {}, "NAD": {}, "NGN": {}, "NIO": {}, "NOK": {},
	"NPR": {}, "NZD": {}, "OMR": {}, "PAB": {}, "PEN": {}, "PGK": {}, "PHP": {},
	"PKR": {}, "PLN": {}, "PYG": {}, "QAR": {}, "RON": {}, "RUB": {}, "RWF": {},
	"SAR": {}, "SCR": {}, "SEK": {}, "SGD": {}, "SLL": {}, "SOS": {}, "STD": {},
	"SVC": {}, "SYP": {}, "SZL": {}, "THB": {}, "TJS": {}, "TND": {}, "TRY": {},
	"TTD": {}, "TWD": {}, "TZS": {}, "UAH": {}, "UGX": {}, "USD": {}, "UZS": {},
	"VND": {}, "XAF": {}, "XOF": {}, "XPF": {}, "YER": {}, "ZAR": {},
}

// NormalizeCurrencyCode uppercases and trims a candidate currency code.
func NormalizeCurrencyCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsSupportedCurrency reports whether the code (case-insensitive) is served
// by the rate provider.
func IsSupportedCurrency(code string) bool {
	_, ok := SupportedCurrencies[NormalizeCurrencyCode(code)]
	return ok
}
