package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lumea-app/SBM-ClientCore/internal/access"
	"github.com/lumea-app/SBM-ClientCore/internal/config"
	"github.com/lumea-app/SBM-ClientCore/internal/domain"
	"github.com/lumea-app/SBM-ClientCore/internal/integrations/backend"
	"github.com/lumea-app/SBM-ClientCore/internal/service/bookings"
	"github.com/lumea-app/SBM-ClientCore/internal/session"
	"github.com/lumea-app/SBM-ClientCore/internal/slots"
	createBookingUC "github.com/lumea-app/SBM-ClientCore/internal/usecase/create_booking"
	rescheduleBookingUC "github.com/lumea-app/SBM-ClientCore/internal/usecase/reschedule_booking"
	"github.com/lumea-app/SBM-ClientCore/pkg/logger"
	"github.com/lumea-app/SBM-ClientCore/pkg/metrics"
	"github.com/lumea-app/SBM-ClientCore/pkg/types"
)

const usage = `Usage: sbm-client [-config path] <command> [args]

Account:
  register <firstname> <email> <password>
  login <email> <password>
  logout
  whoami
  forgot-password <email>
  reset-password <email> <token> <new-password>

Catalog:
  salons
  salon <salon-id>
  services <salon-id>
  hours <salon-id>
  slots <salon-id> <service-id> <date>
  dates

Bookings (customer):
  book <salon-id> <service-id> <date> <time> [notes]
  my-bookings
  cancel <booking-id>
  reschedule <booking-id> <new-date> <new-time>

Bookings (salon owner):
  salon-bookings <salon-id>
  approve <salon-id> <booking-id>
  reject <salon-id> <booking-id> [reason]
`

// app собранные зависимости CLI
type app struct {
	cfg          *config.Config
	log          *logger.Logger
	store        *session.Store
	client       *backend.Client
	bookingSvc   *bookings.Service
	createUC     *createBookingUC.UseCase
	rescheduleUC *rescheduleBookingUC.UseCase
}

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Print(usage)
		os.Exit(2)
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SBM-ClientCore CLI, command=%s", args[0])

	// Инициализируем локальное хранилище учетных данных и сессию
	storage, err := session.NewFileStorage(cfg.Storage.Dir)
	if err != nil {
		log.Fatal("Failed to initialize credential storage: %v", err)
	}
	store := session.NewStore(storage, log)

	// Инициализируем backend-клиент; store отдаёт токен и принимает 401
	client := backend.NewClient(
		cfg.API.BaseURL,
		time.Duration(cfg.API.Timeout)*time.Second,
		store,
		store,
		log,
	)
	if cfg.Metrics.Enabled {
		client = client.WithMetrics(metrics.New(cfg.Metrics.ClientName))
		log.Info("Backend request metrics enabled for client %s", cfg.Metrics.ClientName)
	}

	// Инициализируем сервисы и use cases
	bookingSvc := bookings.NewService(client, log)

	a := &app{
		cfg:          cfg,
		log:          log,
		store:        store,
		client:       client,
		bookingSvc:   bookingSvc,
		createUC:     createBookingUC.NewUseCase(client, bookingSvc, log),
		rescheduleUC: rescheduleBookingUC.NewUseCase(client, bookingSvc, log),
	}

	// Восстанавливаем сессию из локального хранилища до выполнения команды
	store.Restore()

	if err := a.run(context.Background(), args[0], args[1:]); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.logout(ctx)
	case "whoami":
		return a.whoami()
	case "forgot-password":
		return a.forgotPassword(ctx, args)
	case "reset-password":
		return a.resetPassword(ctx, args)
	case "salons":
		return a.listSalons(ctx)
	case "salon":
		return a.showSalon(ctx, args)
	case "services":
		return a.listServices(ctx, args)
	case "hours":
		return a.showWorkingHours(ctx, args)
	case "slots":
		return a.showSlots(ctx, args)
	case "dates":
		return a.showDates()
	case "book":
		return a.book(ctx, args)
	case "my-bookings":
		return a.myBookings(ctx)
	case "cancel":
		return a.cancel(ctx, args)
	case "reschedule":
		return a.reschedule(ctx, args)
	case "salon-bookings":
		return a.salonBookings(ctx, args)
	case "approve":
		return a.approve(ctx, args)
	case "reject":
		return a.reject(ctx, args)
	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// requireSurface пропускает команду только при Allow от шлюза авторизации
func (a *app) requireSurface(required []domain.Role) (domain.Identity, error) {
	sess := a.store.Current()

	switch access.Authorize(sess, required) {
	case access.DecisionAllow:
		return *sess.Identity(), nil
	case access.DecisionDenyUnauthenticated:
		return domain.Identity{}, fmt.Errorf("not logged in, run: sbm-client login <email> <password>")
	case access.DecisionRedirectToAlternateSurface:
		return domain.Identity{}, fmt.Errorf("this command is for customers; manage your salon at %s or use salon-bookings/approve/reject", a.cfg.Web.DashboardURL)
	case access.DecisionWait:
		return domain.Identity{}, fmt.Errorf("session is still restoring, try again")
	default:
		return domain.Identity{}, fmt.Errorf("your role has no access to this command")
	}
}

func (a *app) register(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: register <firstname> <email> <password>")
	}

	resp, err := a.client.Register(ctx, backend.RegisterRequest{
		Firstname: args[0],
		Email:     args[1],
		Password:  args[2],
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", resp.Message)
	fmt.Printf("Registered %s <%s>, now run: sbm-client login %s <password>\n",
		resp.User.Firstname, resp.User.Email, resp.User.Email)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: login <email> <password>")
	}

	credential, err := a.client.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	if err := a.store.Login(*credential); err != nil {
		return err
	}

	fmt.Printf("Logged in as %s (%s)\n", credential.Identity.Firstname, credential.Identity.Role)
	if credential.Identity.Role.IsBackOffice() {
		fmt.Printf("Salon dashboard: %s\n", a.cfg.Web.DashboardURL)
	}
	return nil
}

func (a *app) logout(ctx context.Context) error {
	// серверу сообщаем по возможности, локальная очистка выполняется всегда
	if _, ok := a.store.Token(); ok {
		if err := a.client.Logout(ctx); err != nil {
			a.log.Warn("Logout: server call failed, clearing local session anyway: %v", err)
		}
	}

	if err := a.store.Logout(); err != nil {
		return err
	}

	fmt.Println("Logged out")
	return nil
}

func (a *app) whoami() error {
	sess := a.store.Current()
	identity := sess.Identity()
	if identity == nil {
		fmt.Println("Not logged in")
		return nil
	}

	fmt.Printf("%s <%s> role=%s id=%s\n", identity.Firstname, identity.Email, identity.Role, identity.ID)
	return nil
}

func (a *app) forgotPassword(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: forgot-password <email>")
	}

	resp, err := a.client.ForgotPassword(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", resp.Message)
	return nil
}

func (a *app) resetPassword(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: reset-password <email> <token> <new-password>")
	}

	resp, err := a.client.ResetPassword(ctx, backend.ResetPasswordRequest{
		Email:       args[0],
		Token:       args[1],
		NewPassword: args[2],
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", resp.Message)
	return nil
}

func (a *app) listSalons(ctx context.Context) error {
	salons, err := a.client.ListSalons(ctx)
	if err != nil {
		return err
	}

	for _, salon := range salons {
		fmt.Printf("%-24s %s (%.1f) %s\n", salon.ID, salon.Name, salon.Rating, salon.Address)
	}
	return nil
}

func (a *app) showSalon(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: salon <salon-id>")
	}

	salon, err := a.client.GetSalon(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", salon.Name)
	fmt.Printf("  address: %s\n", salon.Address)
	fmt.Printf("  phone:   %s\n", salon.Phone)
	fmt.Printf("  rating:  %.1f\n", salon.Rating)
	fmt.Printf("  services:\n")
	for _, service := range salon.Services {
		fmt.Printf("    %-16s %-20s %3d min  $%.2f\n", service.ID, service.Name, service.DurationMinutes, service.Price)
	}
	return nil
}

func (a *app) listServices(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: services <salon-id>")
	}

	services, err := a.client.GetServices(ctx, args[0])
	if err != nil {
		return err
	}

	for _, service := range services {
		fmt.Printf("%-16s %-20s %3d min  $%.2f\n", service.ID, service.Name, service.DurationMinutes, service.Price)
	}
	return nil
}

func (a *app) showWorkingHours(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: hours <salon-id>")
	}

	hours, err := a.client.GetWorkingHours(ctx, args[0])
	if err != nil {
		return err
	}

	for day := time.Sunday; day <= time.Saturday; day++ {
		schedule, ok := hours[day]
		if !ok || !schedule.IsOpen {
			fmt.Printf("%-10s closed\n", day)
			continue
		}
		fmt.Printf("%-10s %s - %s\n", day, schedule.OpenTime, schedule.CloseTime)
	}
	return nil
}

// showSlots печатает кандидатов времени начала для услуги в указанную дату
func (a *app) showSlots(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: slots <salon-id> <service-id> <date>")
	}

	date, err := time.Parse(domain.DateFormat, args[2])
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", args[2])
	}

	salon, err := a.client.GetSalon(ctx, args[0])
	if err != nil {
		return err
	}

	service := salon.FindService(args[1])
	if service == nil {
		return fmt.Errorf("service %q not found in salon %s", args[1], salon.Name)
	}

	schedule := salon.WorkingHours.ForDate(date)
	if !schedule.IsOpen {
		fmt.Printf("%s is closed on %s\n", salon.Name, args[2])
		return nil
	}

	candidates, err := slots.GenerateCandidateSlots(schedule.OpenTime, schedule.CloseTime, a.cfg.Booking.SlotStepMinutes)
	if err != nil {
		return err
	}

	fmt.Printf("%s on %s (%s, %d min):\n", salon.Name, args[2], service.Name, service.DurationMinutes)
	for _, slot := range candidates {
		// показываем только слоты, в которые услуга помещается целиком
		end, err := slots.ComputeEndTime(slot, service.DurationMinutes)
		if err != nil || end.IsAfter(schedule.CloseTime) {
			continue
		}
		fmt.Printf("  %s - %s\n", slot, end)
	}
	return nil
}

func (a *app) showDates() error {
	dates, err := slots.GenerateCandidateDates(time.Now(), a.cfg.Booking.CandidateDayCount)
	if err != nil {
		return err
	}
	for _, date := range dates {
		fmt.Printf("%s %s\n", date.Format(domain.DateFormat), date.Weekday())
	}
	return nil
}

func (a *app) book(ctx context.Context, args []string) error {
	if len(args) < 4 {
		return fmt.Errorf("usage: book <salon-id> <service-id> <date> <time> [notes]")
	}

	actor, err := a.requireSurface(access.CustomerSurface)
	if err != nil {
		return err
	}

	date, err := time.Parse(domain.DateFormat, args[2])
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", args[2])
	}

	req := &createBookingUC.Request{
		SalonID:   args[0],
		ServiceID: args[1],
		Date:      date,
		StartTime: types.TimeString(args[3]),
	}
	if len(args) > 4 {
		notes := strings.Join(args[4:], " ")
		req.Notes = &notes
	}

	booking, err := a.createUC.Execute(ctx, actor, req)
	if err != nil {
		return err
	}

	fmt.Printf("Booked %s %s - %s, status=%s, id=%s\n",
		booking.Date.Format(domain.DateFormat), booking.StartTime, booking.EndTime, booking.Status, booking.ID)
	return nil
}

func (a *app) myBookings(ctx context.Context) error {
	actor, err := a.requireSurface(access.CustomerSurface)
	if err != nil {
		return err
	}

	history, err := a.bookingSvc.History(ctx, actor)
	if err != nil {
		return err
	}

	if len(history) == 0 {
		fmt.Println("No bookings yet")
		return nil
	}

	for _, booking := range history {
		printBooking(booking)
	}
	return nil
}

func (a *app) cancel(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: cancel <booking-id>")
	}

	actor, err := a.requireSurface(access.CustomerSurface)
	if err != nil {
		return err
	}

	booking, err := a.findCustomerBooking(ctx, actor, args[0])
	if err != nil {
		return err
	}

	updated, err := a.bookingSvc.RequestTransition(ctx, actor, booking,
		bookings.TransitionRequest{Action: domain.ActionCancel})
	if err != nil {
		return err
	}

	fmt.Printf("Booking %s is now %s\n", updated.ID, updated.Status)
	return nil
}

func (a *app) reschedule(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: reschedule <booking-id> <new-date> <new-time>")
	}

	actor, err := a.requireSurface(access.CustomerSurface)
	if err != nil {
		return err
	}

	booking, err := a.findCustomerBooking(ctx, actor, args[0])
	if err != nil {
		return err
	}

	newDate, err := time.Parse(domain.DateFormat, args[1])
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", args[1])
	}

	updated, err := a.rescheduleUC.Execute(ctx, actor, booking, &rescheduleBookingUC.Request{
		BookingID:    args[0],
		NewDate:      newDate,
		NewStartTime: types.TimeString(args[2]),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Booking %s moved to %s %s - %s, status=%s\n",
		updated.ID, updated.Date.Format(domain.DateFormat), updated.StartTime, updated.EndTime, updated.Status)
	return nil
}

var backOfficeSurface = []domain.Role{domain.RoleSalonOwner, domain.RoleAdmin}

func (a *app) salonBookings(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: salon-bookings <salon-id>")
	}

	actor, err := a.requireSurface(backOfficeSurface)
	if err != nil {
		return err
	}

	list, err := a.bookingSvc.SalonBookings(ctx, actor, args[0])
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Println("No bookings for this salon")
		return nil
	}

	for _, booking := range list {
		printBooking(booking)
	}
	return nil
}

func (a *app) approve(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: approve <salon-id> <booking-id>")
	}
	return a.moderate(ctx, args[0], args[1], domain.ActionApprove, "")
}

func (a *app) reject(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: reject <salon-id> <booking-id> [reason]")
	}
	return a.moderate(ctx, args[0], args[1], domain.ActionReject, strings.Join(args[2:], " "))
}

func (a *app) moderate(ctx context.Context, salonID, bookingID string, action domain.Action, reason string) error {
	actor, err := a.requireSurface(backOfficeSurface)
	if err != nil {
		return err
	}

	booking, err := a.findSalonBooking(ctx, actor, salonID, bookingID)
	if err != nil {
		return err
	}

	updated, err := a.bookingSvc.RequestTransition(ctx, actor, booking,
		bookings.TransitionRequest{Action: action, Reason: reason})
	if err != nil {
		return err
	}

	fmt.Printf("Booking %s is now %s\n", updated.ID, updated.Status)
	return nil
}

// findCustomerBooking ищет бронирование в истории пользователя
func (a *app) findCustomerBooking(ctx context.Context, actor domain.Identity, bookingID string) (*domain.Booking, error) {
	history, err := a.bookingSvc.History(ctx, actor)
	if err != nil {
		return nil, err
	}

	for _, booking := range history {
		if booking.ID == bookingID {
			return booking, nil
		}
	}
	return nil, fmt.Errorf("booking %q not found in your history", bookingID)
}

// findSalonBooking ищет бронирование среди записей салона
func (a *app) findSalonBooking(ctx context.Context, actor domain.Identity, salonID, bookingID string) (*domain.Booking, error) {
	list, err := a.bookingSvc.SalonBookings(ctx, actor, salonID)
	if err != nil {
		return nil, err
	}

	for _, booking := range list {
		if booking.ID == bookingID {
			return booking, nil
		}
	}
	return nil, fmt.Errorf("booking %q not found in salon %s", bookingID, salonID)
}

func printBooking(booking *domain.Booking) {
	fmt.Printf("%-36s %s %s - %s  %-10s salon=%s service=%s\n",
		booking.ID,
		booking.Date.Format(domain.DateFormat),
		booking.StartTime,
		booking.EndTime,
		booking.Status,
		booking.SalonID,
		booking.ServiceID,
	)
}
