package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate = validator.New()

// User is a registered account. Password only ever holds a bcrypt hash and is
// never serialized to clients.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Firstname string             `bson:"firstname" json:"firstname"`
	Lastname  string             `bson:"lastname" json:"lastname"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
	Version   int                `bson:"__v" json:"__v"`
}

// Validate checks the stored schema of a user.
func (u *User) Validate() error {
	verr := &ValidationError{}
	if u.Firstname == "" {
		verr.add("firstname", "is required")
	}
	if u.Lastname == "" {
		verr.add("lastname", "is required")
	}
	if u.Email == "" {
		verr.add("email", "is required")
	} else if err := validate.Var(u.Email, "email"); err != nil {
		verr.add("email", u.Email+" is not a valid email address")
	}
	if u.Password == "" {
		verr.add("password", "is required")
	}
	return verr.orNil()
}

func (u *User) Clone() *User {
	c := *u
	return &c
}
