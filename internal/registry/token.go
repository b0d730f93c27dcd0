package registry

import (
	"strconv"

	"github.com/dmitrijs2005/userregistry/internal/common"
)

// GenerateToken returns a random value in [0,1) as a plain decimal string,
// e.g. "0.7315289044051374". The value comes from crypto/rand.
//
// The token carries no expiry and is not tied to any user; what it is meant
// to authorise has not been decided yet.
func GenerateToken() string {
	return strconv.FormatFloat(common.RandFraction(), 'f', -1, 64)
}
