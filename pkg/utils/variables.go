package utils

import (
	"regexp"
	"strings"
)

// fallback used when a subscriber was created without a usable name.
const defaultClientName = "Cliente"

const previewLimit = 100

var templateTokenRe = regexp.MustCompile(`\{([A-Za-z_]+)\}`)

// TemplateVars is the subscriber snapshot available to cadence templates.
type TemplateVars struct {
	Name             string
	Phone            string
	SubscriptionDate string
}

// ExpandTemplate replaces the supported {token} placeholders in a cadence
// template. Token names are case-insensitive; unknown tokens are left
// verbatim so a typo never breaks a send.
func ExpandTemplate(content string, vars TemplateVars) string {
	return templateTokenRe.ReplaceAllStringFunc(content, func(match string) string {
		token := strings.ToLower(match[1 : len(match)-1])
		switch token {
		case "nome":
			return FirstName(vars.Name)
		case "nome_completo":
			if strings.TrimSpace(vars.Name) == "" {
				return defaultClientName
			}
			return vars.Name
		case "telefone":
			return vars.Phone
		case "data_assinatura":
			return vars.SubscriptionDate
		default:
			return match
		}
	})
}

// FirstName returns the first whitespace-delimited token of a full name.
func FirstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return defaultClientName
	}
	return fields[0]
}

// TruncatePreview shortens long message content for log listings and
// escalation alerts: first 100 characters plus an ellipsis.
func TruncatePreview(s string) string {
	runes := []rune(s)
	if len(runes) <= previewLimit {
		return s
	}
	return string(runes[:previewLimit]) + "..."
}
