package domain

// Role роль пользователя в маркетплейсе
type Role string

const (
	RoleCustomer   Role = "Customer"
	RoleSalonOwner Role = "SalonOwner"
	RoleAdmin      Role = "Admin"
)

// IsValid возвращает true для известной роли
func (r Role) IsValid() bool {
	return r == RoleCustomer || r == RoleSalonOwner || r == RoleAdmin
}

// IsBackOffice возвращает true для ролей, работающих через веб-дашборд.
// Такие роли на мобильной поверхности не блокируются, а перенаправляются.
func (r Role) IsBackOffice() bool {
	return r == RoleSalonOwner || r == RoleAdmin
}

// Identity идентичность аутентифицированного пользователя.
// Выдаётся backend'ом при входе и не изменяется до конца сессии,
// при повторном входе заменяется целиком.
type Identity struct {
	ID        string `json:"id"`
	Firstname string `json:"firstname"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}

// Credential пара из непрозрачного bearer-токена и идентичности, для которой он выдан.
// Структура токена клиентом не разбирается - только прикладывается к запросам.
type Credential struct {
	Token    string   `json:"token"`
	Identity Identity `json:"identity"`
}
