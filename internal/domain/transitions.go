package domain

// Action действие над бронированием
type Action string

const (
	ActionCreate     Action = "create"
	ActionCancel     Action = "cancel"
	ActionReschedule Action = "reschedule"
	ActionApprove    Action = "approve"
	ActionReject     Action = "reject"
)

// transitionRule правило перехода: допустимые исходные статусы и результат.
// keepsStatus = true означает, что действие не меняет статус (reschedule).
type transitionRule struct {
	from        []BookingStatus
	result      BookingStatus
	keepsStatus bool
}

// transitionTable единственный источник истины о том, какая роль какое действие
// может запросить и из какого статуса. Таблицей пользуются и проверка перед
// отправкой запроса, и отображение доступных действий - правила нигде не дублируются.
//
// Create в таблице отсутствует: он не применяется к существующему бронированию
// и обрабатывается отдельно (CanCreate). Терминальные статусы (cancelled,
// rejected, completed) не встречаются ни в одном from - из них переходов нет.
var transitionTable = map[Role]map[Action]transitionRule{
	RoleCustomer: {
		ActionCancel: {
			from:   []BookingStatus{StatusPending, StatusConfirmed},
			result: StatusCancelled,
		},
		ActionReschedule: {
			from:        []BookingStatus{StatusPending, StatusConfirmed},
			keepsStatus: true,
		},
	},
	RoleSalonOwner: {
		ActionApprove: {
			from:   []BookingStatus{StatusPending},
			result: StatusConfirmed,
		},
		ActionReject: {
			from:   []BookingStatus{StatusPending},
			result: StatusRejected,
		},
		ActionCancel: {
			from:   []BookingStatus{StatusPending, StatusConfirmed},
			result: StatusCancelled,
		},
	},
}

// CanCreate возвращает true, если роль может создать бронирование
func CanCreate(role Role) bool {
	return role == RoleCustomer
}

// ValidTransition проверяет, может ли роль выполнить действие над бронированием
// в указанном статусе
func ValidTransition(role Role, action Action, from BookingStatus) bool {
	rule, ok := transitionTable[role][action]
	if !ok {
		return false
	}
	for _, status := range rule.from {
		if status == from {
			return true
		}
	}
	return false
}

// ResultingStatus возвращает статус после выполнения действия.
// Второе значение false, если переход недопустим.
func ResultingStatus(role Role, action Action, from BookingStatus) (BookingStatus, bool) {
	if !ValidTransition(role, action, from) {
		return "", false
	}
	rule := transitionTable[role][action]
	if rule.keepsStatus {
		return from, true
	}
	return rule.result, true
}

// AllowedActions возвращает действия, доступные роли для бронирования в указанном
// статусе. Используется для отображения кнопок действий без дублирования правил.
func AllowedActions(role Role, from BookingStatus) []Action {
	var actions []Action
	for _, action := range []Action{ActionCancel, ActionReschedule, ActionApprove, ActionReject} {
		if ValidTransition(role, action, from) {
			actions = append(actions, action)
		}
	}
	return actions
}
