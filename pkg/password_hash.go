package pkg

import "golang.org/x/crypto/bcrypt"

// bcrypt only looks at the first 72 bytes, and x/crypto rejects longer inputs.
const maxPasswordBytes = 72

const DefaultHashCost = 12

func truncatePassword(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

func HashPassword(password string) (string, error) {
	return HashPasswordWithCost(password, DefaultHashCost)
}

func HashPasswordWithCost(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword(truncatePassword(password), cost)
	if err != nil {
		return "", err
	}
	return BytesToString(bytes), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncatePassword(password)) == nil
}
