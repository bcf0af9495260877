// Command gen writes type-safe GORM query helpers for the users table.
package main

import (
	"gaia/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	g := gen.NewGenerator(gen.Config{
		OutPath:       "./internal/infra/persistence/postgres/query",
		Mode:          gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable: true,
	})

	g.ApplyBasic(model.UserModel{})

	g.Execute()
}
