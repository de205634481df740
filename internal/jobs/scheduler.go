package jobs

import (
	"log"
	"time"

	"facturatie-backend/internal/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// MarkeerVervallenFacturen zet verzonden facturen waarvan de vervaldatum is
// verstreken op 'vervallen'. Betalingen op een vervallen factuur blijven
// gewoon mogelijk; bij volledige betaling wordt de status alsnog 'betaald'.
func MarkeerVervallenFacturen(db *gorm.DB) (int64, error) {
	res := db.Model(&models.Factuur{}).
		Where("status = ? AND vervaldatum < ?", models.FactuurVerzonden, time.Now()).
		Update("status", models.FactuurVervallen)
	return res.RowsAffected, res.Error
}

// Start draait de achtergrondtaken. Dagelijks om 06:00 lokale tijd, plus één
// run bij het opstarten zodat een herstart geen dag overslaat.
func Start(db *gorm.DB) *cron.Cron {
	run := func() {
		aantal, err := MarkeerVervallenFacturen(db)
		if err != nil {
			log.Printf("[WARN] vervallen facturen markeren mislukt: %v", err)
			return
		}
		if aantal > 0 {
			log.Printf("%d facturen als vervallen gemarkeerd", aantal)
		}
	}

	go run()

	c := cron.New()
	if _, err := c.AddFunc("0 6 * * *", run); err != nil {
		log.Printf("[WARN] cronjob kon niet worden geregistreerd: %v", err)
	}
	c.Start()
	return c
}
