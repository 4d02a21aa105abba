// Package email holds helpers shared by the email senders.
package email

import (
	"fmt"
	"net/url"
	"strings"
)

// ShareURL builds the frontend link for an analysis share token.
func ShareURL(frontendURL, shareToken string) string {
	return fmt.Sprintf("%s/shared/%s", strings.TrimRight(frontendURL, "/"), url.PathEscape(shareToken))
}
