// Package slug реализует генерацию slug-идентификатора из названия тарифа.
package slug

import "strings"

// Make приводит название к нижнему регистру и заменяет первый пробел на дефис.
// Например, "Pro Plan" превращается в "pro-plan".
func Make(name string) string {
	return strings.Replace(strings.ToLower(strings.TrimSpace(name)), " ", "-", 1)
}
