package voorraad

import (
	"fmt"
	"time"

	"facturatie-backend/internal/grootboek"
	"facturatie-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Overgangstabel voor verkooporders. Elke statuswijziging loopt via
// WijzigOrderStatus; een overgang die hier niet in staat wordt geweigerd.
//
// concept ──> bevestigd ──> geleverd
//    │            │
//    └────────────┴──> geannuleerd
//
// Bekende beperking: twee gelijktijdige bevestigingen op hetzelfde artikel
// kunnen beide de voorraadcontrole passeren voordat een van beide de
// reservering wegschrijft. Er is geen versieveld of lock op artikelniveau.
var overgangen = map[models.OrderStatus][]models.OrderStatus{
	models.StatusConcept:   {models.StatusBevestigd, models.StatusGeannuleerd},
	models.StatusBevestigd: {models.StatusGeleverd, models.StatusGeannuleerd},
}

func overgangToegestaan(van, naar models.OrderStatus) bool {
	for _, s := range overgangen[van] {
		if s == naar {
			return true
		}
	}
	return false
}

// ParseOrderStatus valideert een statuswaarde uit een request.
func ParseOrderStatus(s string) (models.OrderStatus, error) {
	status := models.OrderStatus(s)
	switch status {
	case models.StatusConcept, models.StatusBevestigd, models.StatusGeleverd, models.StatusGeannuleerd:
		return status, nil
	}
	return "", fiber.NewError(fiber.StatusBadRequest, "Onbekende status: "+s)
}

// regelMetArtikel: orderregel met het bijbehorende, vooraf geladen artikel.
// Alle artikelen worden geladen en alle controles uitgevoerd vóór de eerste
// mutatie, zodat een order met meerdere regels nooit half gereserveerd raakt.
type regelMetArtikel struct {
	regel   models.VerkooporderRegel
	artikel models.Artikel
}

// WijzigOrderStatus voert één statusovergang van een verkooporder uit,
// inclusief de bijbehorende voorraadeffecten. De hele overgang draait in één
// databasetransactie; bij elke fout blijft alles ongewijzigd.
func WijzigOrderStatus(db *gorm.DB, workspaceID uint, orderID uint, naar models.OrderStatus) (*models.Verkooporder, error) {
	var order models.Verkooporder

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Regels").
			Where("id = ? AND workspace_id = ?", orderID, workspaceID).
			First(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Verkooporder niet gevonden")
		}

		if !overgangToegestaan(order.Status, naar) {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Ongeldige statusovergang van '%s' naar '%s'", order.Status, naar))
		}

		switch naar {
		case models.StatusBevestigd:
			if err := bevestig(tx, &order); err != nil {
				return err
			}
		case models.StatusGeleverd:
			if err := lever(tx, &order); err != nil {
				return err
			}
		case models.StatusGeannuleerd:
			if err := annuleer(tx, &order); err != nil {
				return err
			}
		}

		order.Status = naar
		return tx.Model(&models.Verkooporder{}).
			Where("id = ?", order.ID).
			Update("status", naar).Error
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// laadRegels haalt voor elke orderregel het artikel op. Faalt de lookup voor
// één regel, dan faalt de hele overgang zonder iets te muteren.
func laadRegels(tx *gorm.DB, order *models.Verkooporder) ([]regelMetArtikel, error) {
	regels := make([]regelMetArtikel, 0, len(order.Regels))
	for _, regel := range order.Regels {
		var artikel models.Artikel
		if err := tx.Where("id = ? AND workspace_id = ?", regel.ArtikelID, order.WorkspaceID).
			First(&artikel).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusNotFound,
				fmt.Sprintf("Artikel niet gevonden (id %d)", regel.ArtikelID))
		}
		regels = append(regels, regelMetArtikel{regel: regel, artikel: artikel})
	}
	return regels, nil
}

// artikelTotaal: gevraagd aantal gesommeerd per artikel. Een order kan
// hetzelfde artikel op meerdere regels voeren; controles en reserveringen
// rekenen daarom met de som per artikel, niet per losse regel.
type artikelTotaal struct {
	artikel models.Artikel
	aantal  int
}

func sommeerPerArtikel(regels []regelMetArtikel) []artikelTotaal {
	index := make(map[uint]int, len(regels))
	totalen := make([]artikelTotaal, 0, len(regels))
	for _, r := range regels {
		if i, ok := index[r.artikel.ID]; ok {
			totalen[i].aantal += r.regel.Aantal
			continue
		}
		index[r.artikel.ID] = len(totalen)
		totalen = append(totalen, artikelTotaal{artikel: r.artikel, aantal: r.regel.Aantal})
	}
	return totalen
}

// bevestig: reserveert voorraad voor elke orderregel. Eerst alle controles,
// dan pas schrijven (alles-of-niets over de hele order).
func bevestig(tx *gorm.DB, order *models.Verkooporder) error {
	regels, err := laadRegels(tx, order)
	if err != nil {
		return err
	}

	totalen := sommeerPerArtikel(regels)
	for _, t := range totalen {
		beschikbaar := t.artikel.Beschikbaar()
		if beschikbaar < t.aantal {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Onvoldoende voorraad voor %s: gevraagd %d, beschikbaar %d",
					t.artikel.Naam, t.aantal, beschikbaar))
		}
	}

	for _, t := range totalen {
		if err := tx.Model(&models.Artikel{}).
			Where("id = ?", t.artikel.ID).
			Update("gereserveerd", gorm.Expr("gereserveerd + ?", t.aantal)).Error; err != nil {
			return err
		}
	}

	return nil
}

// lever: verbruikt de reservering. Per regel gaat de werkelijke voorraad én de
// reservering omlaag, komt er een voorraadmutatie bij en wordt, als het
// artikel een kostprijs heeft, de kostprijs geboekt (debet kostprijs, credit
// voorraad).
func lever(tx *gorm.DB, order *models.Verkooporder) error {
	regels, err := laadRegels(tx, order)
	if err != nil {
		return err
	}

	inst, err := grootboek.InstellingenVoorWorkspace(tx, order.WorkspaceID)
	if err != nil {
		return err
	}

	nu := time.Now()
	for _, r := range regels {
		if err := tx.Model(&models.Artikel{}).
			Where("id = ?", r.artikel.ID).
			Updates(map[string]interface{}{
				"voorraad":     gorm.Expr("voorraad - ?", r.regel.Aantal),
				"gereserveerd": gorm.Expr("gereserveerd - ?", r.regel.Aantal),
			}).Error; err != nil {
			return err
		}

		mutatie := models.Voorraadmutatie{
			WorkspaceID:    order.WorkspaceID,
			ArtikelID:      r.artikel.ID,
			Aantal:         -r.regel.Aantal,
			Type:           models.MutatieVerkoop,
			ReferentieType: "verkooporder",
			ReferentieID:   order.ID,
			Omschrijving:   fmt.Sprintf("Uitlevering order %s", order.Ordernummer),
			Datum:          nu,
		}
		if err := tx.Create(&mutatie).Error; err != nil {
			return err
		}

		if r.artikel.Inkoopprijs > 0 {
			boeking := grootboek.Boeking{
				WorkspaceID:    order.WorkspaceID,
				DebetRekening:  inst.KostprijsRekening,
				CreditRekening: inst.VoorraadRekening,
				Bedrag:         float64(r.regel.Aantal) * r.artikel.Inkoopprijs,
				Omschrijving:   fmt.Sprintf("Kostprijs %s, order %s", r.artikel.Naam, order.Ordernummer),
				ReferentieType: "verkooporder",
				ReferentieID:   order.ID,
				Datum:          nu,
			}
			if err := grootboek.Boek(tx, boeking); err != nil {
				return err
			}
		}
	}

	return nil
}

// annuleer: geeft reserveringen vrij als de order bevestigd was. Vanaf concept
// was er nooit iets gereserveerd, dus geen voorraadeffect. De werkelijke
// voorraad wijzigt in geen van beide gevallen, dus er komt geen mutatieregel.
func annuleer(tx *gorm.DB, order *models.Verkooporder) error {
	if order.Status != models.StatusBevestigd {
		return nil
	}

	regels, err := laadRegels(tx, order)
	if err != nil {
		return err
	}

	for _, r := range regels {
		if err := tx.Model(&models.Artikel{}).
			Where("id = ?", r.artikel.ID).
			Update("gereserveerd", gorm.Expr("gereserveerd - ?", r.regel.Aantal)).Error; err != nil {
			return err
		}
	}

	return nil
}

// OntvangstRegelInput: één ontvangen regel van een goederenontvangst.
type OntvangstRegelInput struct {
	ArtikelID uint
	Aantal    int // werkelijk ontvangen, kan afwijken van besteld
}

// RegistreerOntvangst verwerkt een goederenontvangst op een bevestigde
// inkooporder: voorraad omhoog met de werkelijk ontvangen aantallen, een
// positieve voorraadmutatie per regel en, als de orderregel een kostprijs
// heeft, een boeking debet voorraad, credit crediteuren-tussenrekening.
func RegistreerOntvangst(db *gorm.DB, workspaceID uint, inkooporderID uint, datum time.Time, opmerking string, regels []OntvangstRegelInput) (*models.Goederenontvangst, error) {
	var ontvangst models.Goederenontvangst

	err := db.Transaction(func(tx *gorm.DB) error {
		var order models.Inkooporder
		if err := tx.Preload("Regels").
			Where("id = ? AND workspace_id = ?", inkooporderID, workspaceID).
			First(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Inkooporder niet gevonden")
		}

		if order.Status != models.InkoopStatusBevestigd {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Inkooporder heeft status '%s', ontvangst kan alleen op een bevestigde order", order.Status))
		}

		if len(regels) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Minimaal één ontvangstregel is verplicht")
		}

		// Eerst alles controleren en laden, dan pas schrijven
		type ontvangstRegel struct {
			orderRegel *models.InkooporderRegel
			artikel    models.Artikel
			aantal     int
		}
		voorbereid := make([]ontvangstRegel, 0, len(regels))
		for _, input := range regels {
			if input.Aantal <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Ontvangen aantal moet groter dan nul zijn")
			}

			var orderRegel *models.InkooporderRegel
			for i := range order.Regels {
				if order.Regels[i].ArtikelID == input.ArtikelID {
					orderRegel = &order.Regels[i]
					break
				}
			}
			if orderRegel == nil {
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("Artikel %d staat niet op de inkooporder", input.ArtikelID))
			}

			var artikel models.Artikel
			if err := tx.Where("id = ? AND workspace_id = ?", input.ArtikelID, workspaceID).
				First(&artikel).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound,
					fmt.Sprintf("Artikel niet gevonden (id %d)", input.ArtikelID))
			}

			voorbereid = append(voorbereid, ontvangstRegel{
				orderRegel: orderRegel,
				artikel:    artikel,
				aantal:     input.Aantal,
			})
		}

		inst, err := grootboek.InstellingenVoorWorkspace(tx, workspaceID)
		if err != nil {
			return err
		}

		if datum.IsZero() {
			datum = time.Now()
		}

		ontvangst = models.Goederenontvangst{
			WorkspaceID:   workspaceID,
			InkooporderID: order.ID,
			Datum:         datum,
			Opmerking:     opmerking,
		}
		if err := tx.Create(&ontvangst).Error; err != nil {
			return err
		}

		for _, r := range voorbereid {
			regel := models.GoederenontvangstRegel{
				GoederenontvangstID: ontvangst.ID,
				ArtikelID:           r.artikel.ID,
				Aantal:              r.aantal,
				Inkoopprijs:         r.orderRegel.Inkoopprijs,
			}
			if err := tx.Create(&regel).Error; err != nil {
				return err
			}

			if err := tx.Model(&models.Artikel{}).
				Where("id = ?", r.artikel.ID).
				Update("voorraad", gorm.Expr("voorraad + ?", r.aantal)).Error; err != nil {
				return err
			}

			mutatie := models.Voorraadmutatie{
				WorkspaceID:    workspaceID,
				ArtikelID:      r.artikel.ID,
				Aantal:         r.aantal,
				Type:           models.MutatieInkoop,
				ReferentieType: "inkooporder",
				ReferentieID:   order.ID,
				Omschrijving:   fmt.Sprintf("Ontvangst order %s", order.Ordernummer),
				Datum:          datum,
			}
			if err := tx.Create(&mutatie).Error; err != nil {
				return err
			}

			if err := tx.Model(&models.InkooporderRegel{}).
				Where("id = ?", r.orderRegel.ID).
				Update("ontvangen", gorm.Expr("ontvangen + ?", r.aantal)).Error; err != nil {
				return err
			}
			r.orderRegel.Ontvangen += r.aantal

			if r.orderRegel.Inkoopprijs > 0 {
				boeking := grootboek.Boeking{
					WorkspaceID:    workspaceID,
					DebetRekening:  inst.VoorraadRekening,
					CreditRekening: inst.CrediteurenRekening,
					Bedrag:         float64(r.aantal) * r.orderRegel.Inkoopprijs,
					Omschrijving:   fmt.Sprintf("Ontvangst %s, order %s", r.artikel.Naam, order.Ordernummer),
					ReferentieType: "inkooporder",
					ReferentieID:   order.ID,
					Datum:          datum,
				}
				if err := grootboek.Boek(tx, boeking); err != nil {
					return err
				}
			}
		}

		// Volledig binnengekomen? Dan krijgt de order status ontvangen.
		volledig := true
		for _, regel := range order.Regels {
			if regel.Ontvangen < regel.Besteld {
				volledig = false
				break
			}
		}
		if volledig {
			if err := tx.Model(&models.Inkooporder{}).
				Where("id = ?", order.ID).
				Update("status", models.InkoopStatusOntvangen).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ontvangst, nil
}

// Correctie boekt een handmatige voorraadcorrectie (telverschil, breuk).
// De voorraad mag door een correctie niet onder het gereserveerde aantal zakken.
func Correctie(db *gorm.DB, workspaceID uint, artikelID uint, aantal int, omschrijving string) (*models.Voorraadmutatie, error) {
	var mutatie models.Voorraadmutatie

	err := db.Transaction(func(tx *gorm.DB) error {
		var artikel models.Artikel
		if err := tx.Where("id = ? AND workspace_id = ?", artikelID, workspaceID).
			First(&artikel).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Artikel niet gevonden")
		}

		if aantal == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Correctie-aantal mag niet nul zijn")
		}

		nieuw := artikel.Voorraad + aantal
		if nieuw < artikel.Gereserveerd {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Correctie zou de voorraad van %s (%d) onder het gereserveerde aantal (%d) brengen",
					artikel.Naam, nieuw, artikel.Gereserveerd))
		}

		if err := tx.Model(&models.Artikel{}).
			Where("id = ?", artikel.ID).
			Update("voorraad", nieuw).Error; err != nil {
			return err
		}

		mutatie = models.Voorraadmutatie{
			WorkspaceID:  workspaceID,
			ArtikelID:    artikel.ID,
			Aantal:       aantal,
			Type:         models.MutatieCorrectie,
			Omschrijving: omschrijving,
			Datum:        time.Now(),
		}
		return tx.Create(&mutatie).Error
	})
	if err != nil {
		return nil, err
	}

	return &mutatie, nil
}
