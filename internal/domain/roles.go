package domain

type Role string

const (
	// Athletes own a profile and receive training/nutrition plans.
	RoleAthlete Role = "ATHLETE"
	// Specialists (coaches, nutritionists) author plans for athletes.
	RoleSpecialist Role = "SPECIALIST"
	// Admins can manage any resource, including athlete profiles.
	RoleAdmin Role = "ADMIN"
)

func IsValidRole(r string) bool {
	return r == string(RoleAthlete) || r == string(RoleSpecialist) || r == string(RoleAdmin)
}

// NormalizeRole returns the role unchanged when it is valid and falls back to
// ATHLETE otherwise. Registration never rejects on role, it defaults.
func NormalizeRole(r string) string {
	if IsValidRole(r) {
		return r
	}
	return string(RoleAthlete)
}
