// Command gen writes typed gorm/gen query helpers for the persistence models.
//
//	go run ./cmd/gen -out ./internal/infra/persistence/postgres/query
package main

import (
	"flag"

	"midatopay/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	outPath := flag.String("out", "./internal/infra/persistence/postgres/query", "output directory for generated query code")
	flag.Parse()

	g := gen.NewGenerator(gen.Config{
		OutPath:       *outPath,
		Mode:          gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable: true,
	})

	g.ApplyBasic(model.UserModel{})

	g.Execute()
}
