package main

import (
	"github.com/eleveia/eleve-go/services/mockapi"
)

// Runs the mock Eleve.ia backend standalone, for front-end development
// against seeded fixture data (sign in with admin/secret).
func main() {
	app := mockapi.NewServer(&mockapi.Options{Address: ":8000"})
	app.Start()
}
