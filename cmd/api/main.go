package main

import (
	"fmt"
	"net/http"

	"github.com/lodgetrack/timeclock-backend/internal/config"
	appHTTP "github.com/lodgetrack/timeclock-backend/internal/handler/http"
	"github.com/lodgetrack/timeclock-backend/internal/pkg/cron"
	"github.com/lodgetrack/timeclock-backend/internal/pkg/database"
	"github.com/lodgetrack/timeclock-backend/internal/pkg/jwt"
	"github.com/lodgetrack/timeclock-backend/internal/pkg/sse"
	"github.com/lodgetrack/timeclock-backend/internal/repository/postgresql"
	payperiodService "github.com/lodgetrack/timeclock-backend/internal/service/payperiod"
	payrollService "github.com/lodgetrack/timeclock-backend/internal/service/payroll"
	punchService "github.com/lodgetrack/timeclock-backend/internal/service/punch"
	stationService "github.com/lodgetrack/timeclock-backend/internal/service/station"
	timesheetService "github.com/lodgetrack/timeclock-backend/internal/service/timesheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	punchRepo := postgresql.NewPunchRepository(db)
	payPeriodRepo := postgresql.NewPayPeriodRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	propertyRepo := postgresql.NewPropertyRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	hub := sse.NewHub()

	payPeriodSvc := payperiodService.NewPayPeriodService(payPeriodRepo, jwtService, hub)
	punchSvc := punchService.NewPunchService(punchRepo, payPeriodSvc, jwtService, hub)
	timesheetSvc := timesheetService.NewTimesheetService(punchRepo, payPeriodRepo, jwtService)
	payrollSvc := payrollService.NewPayrollService(punchRepo, employeeRepo, jwtService)
	stationSvc := stationService.NewStationService(employeeRepo, propertyRepo, punchRepo, hub)

	scheduler := cron.NewScheduler()
	cron.NewPayPeriodJobs(punchRepo, payPeriodRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	handlers := appHTTP.Handlers{
		Punch:     appHTTP.NewPunchHandler(punchSvc),
		Timesheet: appHTTP.NewTimesheetHandler(timesheetSvc),
		PayPeriod: appHTTP.NewPayPeriodHandler(payPeriodSvc),
		Payroll:   appHTTP.NewPayrollHandler(payrollSvc),
		Station:   appHTTP.NewStationHandler(stationSvc),
		Events:    appHTTP.NewEventsHandler(jwtService, hub),
	}

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		AllowedOrigins: cfg.App.AllowedOrigins,
		Env:            cfg.App.Env,
	}, jwtService, handlers)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
