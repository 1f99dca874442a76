package bootstrap

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	recordsinadapter "uxlab/internal/modules/records/adapter/in"
	recordsoutadapter "uxlab/internal/modules/records/adapter/out"
	recordsservice "uxlab/internal/modules/records/service"
	recordsusecase "uxlab/internal/modules/records/usecase"
	reportinadapter "uxlab/internal/modules/report/adapter/in"
	reportservice "uxlab/internal/modules/report/service"
	reportusecase "uxlab/internal/modules/report/usecase"
	sessioninadapter "uxlab/internal/modules/session/adapter/in"
	sessionservice "uxlab/internal/modules/session/service"
	sessionusecase "uxlab/internal/modules/session/usecase"
	stagesinadapter "uxlab/internal/modules/stages/adapter/in"
	stagesservice "uxlab/internal/modules/stages/service"
	stagesusecase "uxlab/internal/modules/stages/usecase"
	studyinadapter "uxlab/internal/modules/study/adapter/in"
	studyoutadapter "uxlab/internal/modules/study/adapter/out"
	studyservice "uxlab/internal/modules/study/service"
	studyusecase "uxlab/internal/modules/study/usecase"
	"uxlab/internal/platform/clock"
	"uxlab/internal/platform/config"
	"uxlab/internal/platform/id"
	"uxlab/internal/platform/logging"
	"uxlab/internal/platform/tx"
	uiapp "uxlab/internal/ui/app"
)

// App wires every module once per process. The in-adapters serve both
// surfaces: cobra calls them directly, the TUI reaches them through its
// port interfaces.
type App struct {
	RecordsCLI recordsinadapter.CLIHandler
	SessionCLI sessioninadapter.CLIHandler
	StudyCLI   *studyinadapter.CLIHandler
	StagesCLI  *stagesinadapter.CLIHandler
	ReportCLI  *reportinadapter.CLIHandler

	Log *zap.Logger
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}

	logger, err := logging.NewFileLogger(cfg.LogPath)
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}

	datasetStore := recordsoutadapter.NewCSVDatasetStore(cfg.DataDir)
	submissionIndex, err := recordsoutadapter.NewSQLiteSubmissionIndex(cfg.IndexPath)
	if err != nil {
		return nil, fmt.Errorf("new submission index: %w", err)
	}
	recordsUC := recordsusecase.NewInteractor(
		recordsservice.NewRecordService(datasetStore, submissionIndex, tx.NoopManager{}, logger),
	)

	timerSvc := sessionservice.NewTimerService(clk, ids)
	timerUC := sessionusecase.NewInteractor(timerSvc, timerSvc.NewSession())

	studyUC := studyusecase.NewInteractor(studyservice.NewStudyService(
		studyoutadapter.NewYAMLPlanStore(cfg.StudyPath),
		studyoutadapter.NewMarkdownDocReader(),
		studyoutadapter.NewPDFDocReader(),
		filepath.Join(cfg.RootDir, "docs"),
	))

	stagesUC := stagesusecase.NewInteractor(
		stagesservice.NewStageService(clk), recordsUC, timerUC, studyUC,
	)

	reportUC := reportusecase.NewInteractor(reportservice.NewReportService(clk), recordsUC)

	return &App{
		RecordsCLI: recordsinadapter.NewCLIHandler(recordsUC),
		SessionCLI: sessioninadapter.NewCLIHandler(timerUC),
		StudyCLI:   studyinadapter.NewCLIHandler(studyUC),
		StagesCLI:  stagesinadapter.NewCLIHandler(stagesUC),
		ReportCLI:  reportinadapter.NewCLIHandler(reportUC),
		Log:        logger,
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.StudyCLI, app.StagesCLI, app.SessionCLI, app.RecordsCLI, app.ReportCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
