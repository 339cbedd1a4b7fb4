package main

import (
	"fmt"
	"os"

	"vaktdata.no/vaktdata/security"
)

func main() {
	token, err := security.CreateIdentityToken(&security.Identity{
		UserID: os.Getenv("USER_ID"),
		OrgID:  os.Getenv("ORG_ID"),
		Name:   "dev",
	}, os.Getenv("VAKTDATA_SIGNING_SECRET"), 3600)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)
}
