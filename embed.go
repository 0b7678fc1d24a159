package shadowmatch

import "embed"

// EmailFS holds the notification email templates.
//
//go:embed templates/emails
var EmailFS embed.FS
