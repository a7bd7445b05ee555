// Package access содержит шлюз ролевой авторизации экранов.
// Экраны переключаются по Decision и нигде не сравнивают роли самостоятельно.
package access

import (
	"github.com/lumea-app/SBM-ClientCore/internal/domain"
	"github.com/lumea-app/SBM-ClientCore/internal/session"
)

// Decision решение шлюза авторизации
type Decision string

const (
	// DecisionWait сессия ещё восстанавливается - показать нейтральный
	// индикатор загрузки, не контент и не отказ
	DecisionWait Decision = "wait"

	// DecisionAllow доступ разрешён
	DecisionAllow Decision = "allow"

	// DecisionDenyUnauthenticated пользователь не аутентифицирован - на экран входа
	DecisionDenyUnauthenticated Decision = "deny_unauthenticated"

	// DecisionDenyForbidden роль не имеет доступа к поверхности
	DecisionDenyForbidden Decision = "deny_forbidden"

	// DecisionRedirectToAlternateSurface back-office роль на клиентской поверхности.
	// Это не отказ: такие роли структурно работают через веб-дашборд,
	// и их нужно перенаправить туда, а не блокировать.
	DecisionRedirectToAlternateSurface Decision = "redirect_to_alternate_surface"
)

// CustomerSurface набор ролей мобильной клиентской поверхности
var CustomerSurface = []domain.Role{domain.RoleCustomer}

// Authorize принимает решение о доступе текущей сессии к поверхности,
// требующей одну из ролей required. Чистая функция без побочных эффектов.
func Authorize(sess session.Session, required []domain.Role) Decision {
	if sess.IsRestoring() {
		return DecisionWait
	}

	identity := sess.Identity()
	if identity == nil {
		return DecisionDenyUnauthenticated
	}

	for _, role := range required {
		if identity.Role == role {
			return DecisionAllow
		}
	}

	if identity.Role.IsBackOffice() && isCustomerOnly(required) {
		return DecisionRedirectToAlternateSurface
	}

	return DecisionDenyForbidden
}

// isCustomerOnly возвращает true, если required - чисто клиентская поверхность
func isCustomerOnly(required []domain.Role) bool {
	for _, role := range required {
		if role != domain.RoleCustomer {
			return false
		}
	}
	return len(required) > 0
}
