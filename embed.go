package volunteerhub

import "embed"

// EmailFS carries the email templates compiled into the binary.
//
//go:embed templates/emails
var EmailFS embed.FS
