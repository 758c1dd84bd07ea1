package main

import (
	"context"
	"log"
	"time"

	"equiplend/internal/config"
	"equiplend/internal/database"
	"equiplend/internal/domain"
	"equiplend/internal/modules/auth"
	"equiplend/internal/repository"
)

type seedActor struct {
	name     string
	email    string
	password string
	role     domain.Role
}

type seedItem struct {
	name        string
	category    string
	description string
	condition   domain.Condition
}

var actors = []seedActor{
	{"Desk Admin", "admin@equiplend.local", "admin123", domain.RoleAdmin},
	{"Media Desk", "media@equiplend.local", "media123", domain.RoleMediaStaff},
	{"Dr. Lecturer", "lecturer@equiplend.local", "lecturer123", domain.RoleLecturer},
	{"Sam Student", "student@equiplend.local", "student123", domain.RoleStudent},
	{"Alex Student", "alex@equiplend.local", "student123", domain.RoleStudent},
}

var items = []seedItem{
	{"Sony A7 III", "camera", "Full frame body, 28-70 kit lens", domain.ConditionGood},
	{"Canon EOS R6", "camera", "", domain.ConditionNew},
	{"Manfrotto 055", "tripod", "Aluminium tripod with ball head", domain.ConditionFair},
	{"Rode NTG3", "audio", "Shotgun microphone", domain.ConditionGood},
	{"Zoom H6", "audio", "Six track field recorder", domain.ConditionGood},
	{"Aputure 120d", "lighting", "LED light with softbox", domain.ConditionPoor},
	{"DJI Ronin-S", "stabilizer", "", domain.ConditionGood},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	log.Println("Cleaning old data...")
	for _, table := range []string{"checkout_records", "reservations", "equipment", "actors"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("clean %s: %v", table, err)
		}
	}

	ctx := context.Background()
	actorRepo := repository.NewActorRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	reservationRepo := repository.NewReservationRepository(db)

	log.Println("Creating actors...")
	ids := make(map[domain.Role]int64)
	for _, a := range actors {
		hash, err := auth.HashPassword(a.password)
		if err != nil {
			log.Fatalf("hash password for %s: %v", a.email, err)
		}
		actor := &domain.Actor{Name: a.name, Email: a.email, Role: a.role, PasswordHash: hash}
		if err := actorRepo.Create(ctx, actor); err != nil {
			log.Fatalf("create actor %s: %v", a.email, err)
		}
		if _, ok := ids[a.role]; !ok {
			ids[a.role] = actor.ID
		}
	}

	log.Println("Creating equipment...")
	now := time.Now().UTC()
	var first int64
	for _, it := range items {
		e := &domain.Equipment{
			Name:        it.name,
			Category:    it.category,
			Description: it.description,
			Condition:   it.condition,
			Status:      domain.EquipmentAvailable,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := equipmentRepo.Create(ctx, e); err != nil {
			log.Fatalf("create equipment %s: %v", it.name, err)
		}
		if first == 0 {
			first = e.ID
		}
	}

	log.Println("Creating a pending reservation...")
	y, m, d := now.AddDate(0, 0, 3).Date()
	r := &domain.Reservation{
		RequesterID:   ids[domain.RoleStudent],
		EquipmentID:   first,
		RequestedDate: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Status:        domain.ReservationPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := reservationRepo.Create(ctx, r); err != nil {
		log.Fatalf("create reservation: %v", err)
	}

	log.Printf("Seed completed: actors=%d equipment=%d reservations=1", len(actors), len(items))
}
