package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gen"
	"gorm.io/gorm"
)

var tables = []string{"zones", "houses", "blips", "players", "organizations"}

func main() {
	var dsn, out string
	flag.StringVar(&dsn, "dsn", os.Getenv("MAPAPYLIFE_DB_DSN"), "postgres dsn")
	flag.StringVar(&out, "out", "internal/adapter/repo/gorm/model", "output dir for generated models")
	flag.Parse()

	if dsn == "" {
		log.Fatal("missing --dsn or MAPAPYLIFE_DB_DSN")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:       out,
		ModelPkgPath:  "model",
		Mode:          gen.WithoutContext,
		FieldNullable: true,
	})
	g.UseDB(db)
	// schema_migrations is bookkeeping for the migrator and has no model
	for _, table := range tables {
		g.GenerateModel(table)
	}
	g.Execute()

	fmt.Printf("generated gorm models for %d tables at %s\n", len(tables), out)
}
