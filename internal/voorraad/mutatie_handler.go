package voorraad

import (
	"fmt"
	"time"

	"facturatie-backend/internal/database"
	"facturatie-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

type MutatieResponse struct {
	ID             uint   `json:"id"`
	ArtikelID      uint   `json:"artikel_id"`
	ArtikelNaam    string `json:"artikel_naam"`
	Aantal         int    `json:"aantal"`
	Type           string `json:"type"`
	ReferentieType string `json:"referentie_type"`
	ReferentieID   uint   `json:"referentie_id"`
	Omschrijving   string `json:"omschrijving"`
	Datum          string `json:"datum"`
}

func mutatieQuery(c *fiber.Ctx, workspaceID uint) (*[]models.Voorraadmutatie, error) {
	query := database.DB.Preload("Artikel").
		Where("workspace_id = ?", workspaceID).
		Order("datum desc, id desc")

	if artikelID := c.Query("artikel_id"); artikelID != "" {
		query = query.Where("artikel_id = ?", artikelID)
	}
	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "from datum ongeldig (YYYY-MM-DD)")
		}
		query = query.Where("datum >= ?", from)
	}
	if toStr := c.Query("to"); toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "to datum ongeldig (YYYY-MM-DD)")
		}
		// einddatum inclusief
		query = query.Where("datum < ?", to.AddDate(0, 0, 1))
	}

	var mutaties []models.Voorraadmutatie
	if err := query.Find(&mutaties).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Voorraadmutaties konden niet worden opgehaald")
	}
	return &mutaties, nil
}

// GET /api/voorraad/mutaties?artikel_id=&from=&to=
func ListMutatiesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, err := resolveWorkspaceIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		mutaties, err := mutatieQuery(c, workspaceID)
		if err != nil {
			return err
		}

		res := make([]MutatieResponse, 0, len(*mutaties))
		for _, m := range *mutaties {
			res = append(res, MutatieResponse{
				ID:             m.ID,
				ArtikelID:      m.ArtikelID,
				ArtikelNaam:    m.Artikel.Naam,
				Aantal:         m.Aantal,
				Type:           string(m.Type),
				ReferentieType: m.ReferentieType,
				ReferentieID:   m.ReferentieID,
				Omschrijving:   m.Omschrijving,
				Datum:          m.Datum.Format("2006-01-02"),
			})
		}
		return c.JSON(res)
	}
}

// GET /api/voorraad/mutaties/export
// Zelfde filters als de lijst, maar als XLSX-download.
func ExportMutatiesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workspaceID, err := resolveWorkspaceIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		mutaties, err := mutatieQuery(c, workspaceID)
		if err != nil {
			return err
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := "Voorraadmutaties"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{"Datum", "Artikel", "Aantal", "Type", "Referentie", "Omschrijving"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		for row, m := range *mutaties {
			referentie := ""
			if m.ReferentieType != "" {
				referentie = fmt.Sprintf("%s #%d", m.ReferentieType, m.ReferentieID)
			}
			values := []interface{}{
				m.Datum.Format("2006-01-02"),
				m.Artikel.Naam,
				m.Aantal,
				string(m.Type),
				referentie,
				m.Omschrijving,
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excelbestand kon niet worden gegenereerd")
		}

		filename := fmt.Sprintf("voorraadmutaties_%s.xlsx", time.Now().Format("2006-01-02"))
		c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		return c.Send(buf.Bytes())
	}
}
