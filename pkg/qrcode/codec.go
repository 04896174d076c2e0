package qrcode

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	goqrcode "github.com/skip2/go-qrcode"
)

// ErrInvalidToken covers every reason a QR payload cannot be trusted: bad
// signature, malformed structure, unexpected algorithm or missing claim.
var ErrInvalidToken = errors.New("invalid qrcode content")

const DefaultImageSize = 256

// Codec signs storage unit identifiers into QR payloads. Payloads are HS256
// JWTs without expiry, so a printed code stays valid until the unit is gone.
type Codec struct {
	secret []byte
}

type payload struct {
	StorageUnitID string `json:"storage_unit_id"`
	jwt.RegisteredClaims
}

func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, fmt.Errorf("qrcode signing secret is empty")
	}

	return &Codec{secret: []byte(secret)}, nil
}

func (c *Codec) Encode(storageUnitID uuid.UUID) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload{
		StorageUnitID: storageUnitID.String(),
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign qrcode content: %w", err)
	}

	return signed, nil
}

func (c *Codec) Decode(content string) (uuid.UUID, error) {
	var claims payload

	token, err := jwt.ParseWithClaims(content, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	id, err := uuid.Parse(claims.StorageUnitID)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return id, nil
}

// PNG renders the signed payload of a storage unit as a QR code image.
func (c *Codec) PNG(storageUnitID uuid.UUID, size int) ([]byte, error) {
	content, err := c.Encode(storageUnitID)
	if err != nil {
		return nil, err
	}

	if size <= 0 {
		size = DefaultImageSize
	}

	image, err := goqrcode.Encode(content, goqrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to render qrcode: %w", err)
	}

	return image, nil
}
