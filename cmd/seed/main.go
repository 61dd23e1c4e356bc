package main

import (
	"flag"
	"log"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/garage-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/garage-scheduler/internal/db"
	"github.com/BruksfildServices01/garage-scheduler/internal/logger"
	"github.com/BruksfildServices01/garage-scheduler/internal/models"
)

var serviceCatalog = []models.Service{
	{Name: "Troca de óleo", Category: "maintenance", DurationMin: 30, Price: 150},
	{Name: "Alinhamento e balanceamento", Category: "tires", DurationMin: 60, Price: 180},
	{Name: "Revisão de freios", Category: "brakes", DurationMin: 90, Price: 320},
	{Name: "Diagnóstico eletrônico", Category: "diagnostics", DurationMin: 45, Price: 200},
	{Name: "Troca de embreagem", Category: "transmission", DurationMin: 240, Price: 1400},
	{Name: "Revisão completa", Category: "maintenance", DurationMin: 480, Price: 950},
}

func main() {
	clients := flag.Int("clients", 50, "number of clients to create")
	flag.Parse()

	cfg := config.Load()

	zl, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()

	db, err := dbpkg.NewDB(cfg, zl)
	if err != nil {
		zl.Fatal("database unavailable", zap.Error(err))
	}

	gofakeit.Seed(time.Now().UnixNano())

	zl.Info("seed starting", zap.Int("clients", *clients))

	if err := seedServices(db); err != nil {
		zl.Fatal("seed services", zap.Error(err))
	}
	if err := seedWorkingHours(db); err != nil {
		zl.Fatal("seed working hours", zap.Error(err))
	}
	if err := seedClients(db, *clients); err != nil {
		zl.Fatal("seed clients", zap.Error(err))
	}

	zl.Info("seed complete")
}

func seedServices(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Service{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	services := make([]models.Service, len(serviceCatalog))
	for i, s := range serviceCatalog {
		s.Active = true
		s.Description = gofakeit.Sentence(8)
		services[i] = s
	}
	return db.Create(&services).Error
}

// seedWorkingHours: weekdays with a lunch break, half day on Saturday,
// closed on Sunday.
func seedWorkingHours(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.WorkingHours{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	days := []models.WorkingHours{{Weekday: int(time.Sunday), Active: false}}
	for wd := time.Monday; wd <= time.Friday; wd++ {
		days = append(days, models.WorkingHours{
			Weekday:    int(wd),
			Active:     true,
			StartTime:  "08:00",
			EndTime:    "18:00",
			LunchStart: "12:00",
			LunchEnd:   "13:00",
		})
	}
	days = append(days, models.WorkingHours{
		Weekday:   int(time.Saturday),
		Active:    true,
		StartTime: "08:00",
		EndTime:   "12:00",
	})

	return db.Create(&days).Error
}

func seedClients(db *gorm.DB, count int) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < count; i++ {
			client := models.Client{
				Name:  gofakeit.Name(),
				Phone: gofakeit.Phone(),
				Email: gofakeit.Email(),
			}
			if err := tx.Create(&client).Error; err != nil {
				return err
			}

			vehicles := gofakeit.Number(1, 2)
			for v := 0; v < vehicles; v++ {
				vehicle := models.Vehicle{
					ClientID: client.ID,
					Make:     gofakeit.CarMaker(),
					Model:    gofakeit.CarModel(),
					Year:     gofakeit.Number(2005, 2025),
					Plate:    strings.ToUpper(gofakeit.LetterN(3)) + gofakeit.DigitN(4),
				}
				if err := tx.Create(&vehicle).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
