package controllers

import (
	dbtypes "github.com/AhmedSalahALghzaly/lats-go/pkg/db/types"
)

// dbtypesArray converts a request slice into the JSON-backed column type
// so partial updates can write array fields through gorm field maps.
func dbtypesArray(values []string) dbtypes.StringArray {
	return dbtypes.StringArray(values)
}
