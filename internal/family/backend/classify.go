package backend

import (
	"fmt"
	"net/http"

	dErrors "famcard/pkg/domain-errors"
)

// classifyStatus maps a non-2xx response onto the error taxonomy. Credential
// rejections are auth errors; a token rejected by a data endpoint is too,
// because the session cannot be refreshed mid-pipeline.
func classifyStatus(path string, status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		if path == pathLogin {
			return dErrors.New(dErrors.CodeAuth, "credentials rejected")
		}
		return dErrors.New(dErrors.CodeAuth, fmt.Sprintf("session rejected by %s", path))
	case status == http.StatusNotFound && path != pathLogin:
		return dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("%s returned 404", path))
	case status >= 500:
		return dErrors.New(dErrors.CodeTransport, fmt.Sprintf("%s returned %d", path, status))
	default:
		return dErrors.New(dErrors.CodeTransport, fmt.Sprintf("%s returned unexpected status %d", path, status))
	}
}

// classifyTransport wraps a failed round trip. Timeouts and network errors
// keep their cause so operators can tell them apart.
func classifyTransport(path string, err error) error {
	ce := dErrors.Classify(err)
	return dErrors.Wrap(ce.Err, ce.Code, fmt.Sprintf("%s: %s", path, ce.Message))
}
