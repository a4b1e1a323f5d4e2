package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

type Role string

const (
	RoleUser   Role = "user"
	RoleFarmer Role = "farmer"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleFarmer
}

// User is an account. Password holds the bcrypt hash and never leaves the
// process in a response body.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username    string             `bson:"username" json:"username"`
	Mail        string             `bson:"mail" json:"mail"`
	Password    string             `bson:"password,omitempty" json:"-"`
	PhoneNumber string             `bson:"phonenumber,omitempty" json:"phonenumber,omitempty"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	Pic         []byte             `bson:"pic,omitempty" json:"pic,omitempty"`
	Type        Role               `bson:"type" json:"type"`
}

// UserRef is the author view embedded into blog listings.
type UserRef struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Username string             `bson:"username" json:"username"`
}
