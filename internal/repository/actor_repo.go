package repository

import (
	"context"
	"strings"
	"time"

	"equiplend/internal/domain"

	"gorm.io/gorm"
)

type ActorRepository struct {
	db *gorm.DB
}

func NewActorRepository(db *gorm.DB) *ActorRepository {
	return &ActorRepository{db: db}
}

type actorModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Name         string    `gorm:"column:name;size:200;not null"`
	Email        string    `gorm:"column:email;size:255;uniqueIndex;not null"`
	Role         string    `gorm:"column:role;size:20;not null"`
	PasswordHash string    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (actorModel) TableName() string { return "actors" }

// toDomainActor normalizes the stored role. An unrecognized role is kept
// as-is and fails authorization.
func toDomainActor(m actorModel) *domain.Actor {
	role, _ := domain.ParseRole(m.Role)
	return &domain.Actor{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		Role:         role,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

func (r *ActorRepository) Create(ctx context.Context, a *domain.Actor) error {
	m := actorModel{
		Name:         a.Name,
		Email:        strings.TrimSpace(strings.ToLower(a.Email)),
		Role:         string(a.Role),
		PasswordHash: a.PasswordHash,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return classify(err)
	}
	*a = *toDomainActor(m)
	return nil
}

func (r *ActorRepository) GetByID(ctx context.Context, id int64) (*domain.Actor, error) {
	var m actorModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, classify(err)
	}
	return toDomainActor(m), nil
}

func (r *ActorRepository) GetByEmail(ctx context.Context, email string) (*domain.Actor, error) {
	var m actorModel
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.TrimSpace(strings.ToLower(email))).
		First(&m).Error
	if err != nil {
		return nil, classify(err)
	}
	return toDomainActor(m), nil
}

// GetRole returns only the stored role of an actor.
func (r *ActorRepository) GetRole(ctx context.Context, id int64) (domain.Role, error) {
	var role string
	tx := r.db.WithContext(ctx).Model(&actorModel{}).Select("role").Where("id = ?", id).Scan(&role)
	if tx.Error != nil {
		return "", classify(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return "", notFound("actor", id)
	}
	parsed, _ := domain.ParseRole(role)
	return parsed, nil
}
