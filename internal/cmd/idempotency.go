package cmd

import "github.com/google/uuid"

func newIdempotencyKey() string {
	return "pscli_" + uuid.NewString()
}
