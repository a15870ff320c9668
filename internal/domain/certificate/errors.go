package certificate

import "errors"

var (
	ErrCertificateNotFound = errors.New("certificate not found")
)
