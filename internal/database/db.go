package database

import (
	"log"

	"facturatie-backend/internal/config"
	"facturatie-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Kan geen verbinding maken met de database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate fout: %v", err)
	}

	log.Println("Databaseverbinding geslaagd. Migratie afgerond.")
}

// Migrate: schema-migratie voor alle modellen. Apart zodat tests hetzelfde
// schema tegen sqlite kunnen opbouwen.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Workspace{},
		&models.User{},
		&models.Klant{},
		&models.Leverancier{},
		&models.Artikel{},
		&models.Verkooporder{},
		&models.VerkooporderRegel{},
		&models.Inkooporder{},
		&models.InkooporderRegel{},
		&models.Goederenontvangst{},
		&models.GoederenontvangstRegel{},
		&models.Voorraadmutatie{},
		&models.Grootboekrekening{},
		&models.Journaalpost{},
		&models.BoekhoudInstellingen{},
		&models.Factuur{},
		&models.FactuurRegel{},
		&models.Betaling{},
		&models.AuditLog{},
	)
}
