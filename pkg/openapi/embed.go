package openapi

import _ "embed"

const defaultContractPath = "contract/customers.yaml"

//go:embed contract/customers.yaml
var defaultContract []byte

// DefaultContract returns a copy of the embedded customer API contract.
func DefaultContract() []byte {
	return append([]byte(nil), defaultContract...)
}
