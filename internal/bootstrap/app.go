package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"candidate-backend/internal/certifications"
	"candidate-backend/internal/education"
	"candidate-backend/internal/experiences"
	"candidate-backend/internal/projects"
	"candidate-backend/internal/resumes"
	"candidate-backend/internal/shared/config"
	"candidate-backend/internal/shared/server"
	"candidate-backend/internal/shared/storage/db"
	"candidate-backend/internal/shared/storage/object"
	localstore "candidate-backend/internal/shared/storage/object/local"
	s3store "candidate-backend/internal/shared/storage/object/s3"
	"candidate-backend/internal/skills"
)

// App holds shared dependencies.
type App struct {
	Config                config.Config
	Router                *gin.Engine
	DB                    *sql.DB
	Store                 object.ObjectStore
	ResumesRepo           resumes.Repo
	ExperiencesRepo       experiences.Repo
	EducationRepo         education.Repo
	SkillsRepo            skills.Repo
	ProjectsRepo          projects.Repo
	CertificationsRepo    certifications.Repo
	ResumesService        *resumes.Service
	ExperiencesService    *experiences.Service
	EducationService      *education.Service
	SkillsService         *skills.Service
	ProjectsService       *projects.Service
	CertificationsService *certifications.Service
	ResumesHandler        *resumes.Handler
	ExperiencesHandler    *experiences.Handler
	EducationHandler      *education.Handler
	SkillsHandler         *skills.Handler
	ProjectsHandler       *projects.Handler
	CertificationsHandler *certifications.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         app.Config,
		Resumes:        app.ResumesHandler,
		Experiences:    app.ExperiencesHandler,
		Education:      app.EducationHandler,
		Skills:         app.SkillsHandler,
		Projects:       app.ProjectsHandler,
		Certifications: app.CertificationsHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
		return nil, nil
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if cfg.Debug {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.MediaRoot, cfg.PublicBaseURL), nil
	}
}

func buildServices(app *App) {
	var resumeRepo resumes.Repo
	var expRepo experiences.Repo
	var eduRepo education.Repo
	var skillRepo skills.Repo
	var projectRepo projects.Repo
	var certRepo certifications.Repo

	if app.DB != nil {
		resumeRepo = &resumes.PGRepo{DB: app.DB}
		expRepo = &experiences.PGRepo{DB: app.DB}
		eduRepo = &education.PGRepo{DB: app.DB}
		skillRepo = &skills.PGRepo{DB: app.DB}
		projectRepo = &projects.PGRepo{DB: app.DB}
		certRepo = &certifications.PGRepo{DB: app.DB}
	} else {
		resumeRepo = resumes.NewMemoryRepo()
		expRepo = experiences.NewMemoryRepo()
		eduRepo = education.NewMemoryRepo()
		skillRepo = skills.NewMemoryRepo()
		projectRepo = projects.NewMemoryRepo()
		certRepo = certifications.NewMemoryRepo()
	}

	var validator resumes.FileValidator
	if app.Config.ValidatePDF {
		validator = resumes.PDFValidator{}
	}

	resumeSvc := &resumes.Service{
		Repo:           resumeRepo,
		Store:          app.Store,
		Experiences:    experienceAdapter{repo: expRepo},
		Education:      educationAdapter{repo: eduRepo},
		Skills:         skillAdapter{repo: skillRepo},
		Projects:       projectAdapter{repo: projectRepo},
		Certifications: certificationAdapter{repo: certRepo},
		Validator:      validator,
	}

	parents := parentAdapter{repo: resumeRepo}
	expSvc := &experiences.Service{Repo: expRepo, Parents: parents}
	eduSvc := &education.Service{Repo: eduRepo, Parents: parents}
	skillSvc := &skills.Service{Repo: skillRepo, Parents: parents}
	projectSvc := &projects.Service{Repo: projectRepo, Parents: parents}
	certSvc := &certifications.Service{Repo: certRepo, Parents: parents}

	app.ResumesRepo = resumeRepo
	app.ExperiencesRepo = expRepo
	app.EducationRepo = eduRepo
	app.SkillsRepo = skillRepo
	app.ProjectsRepo = projectRepo
	app.CertificationsRepo = certRepo
	app.ResumesService = resumeSvc
	app.ExperiencesService = expSvc
	app.EducationService = eduSvc
	app.SkillsService = skillSvc
	app.ProjectsService = projectSvc
	app.CertificationsService = certSvc
	app.ResumesHandler = resumes.NewHandler(resumeSvc, app.Config.MaxUploadBytes)
	app.ExperiencesHandler = experiences.NewHandler(expSvc)
	app.EducationHandler = education.NewHandler(eduSvc)
	app.SkillsHandler = skills.NewHandler(skillSvc)
	app.ProjectsHandler = projects.NewHandler(projectSvc)
	app.CertificationsHandler = certifications.NewHandler(certSvc)
}

// parentAdapter lets child services check resume existence without importing
// the resumes package's repo directly.
type parentAdapter struct {
	repo resumes.Repo
}

func (a parentAdapter) Exists(ctx context.Context, id string) (bool, error) {
	return a.repo.Exists(ctx, id)
}

type experienceAdapter struct {
	repo experiences.Repo
}

func (a experienceAdapter) ListByResume(ctx context.Context, resumeID string) ([]resumes.ExperienceRecord, error) {
	all, err := a.repo.ListByResume(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	out := make([]resumes.ExperienceRecord, 0, len(all))
	for _, exp := range all {
		out = append(out, resumes.ExperienceRecord{
			ID:          exp.ID,
			Company:     exp.Company,
			Title:       exp.Title,
			StartDate:   exp.StartDate,
			EndDate:     exp.EndDate,
			Description: exp.Description,
			SkillsUsed:  exp.SkillsUsed,
		})
	}
	return out, nil
}

func (a experienceAdapter) DeleteByResume(ctx context.Context, resumeID string) error {
	return a.repo.DeleteByResume(ctx, resumeID)
}

type educationAdapter struct {
	repo education.Repo
}

func (a educationAdapter) ListByResume(ctx context.Context, resumeID string) ([]resumes.EducationRecord, error) {
	all, err := a.repo.ListByResume(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	out := make([]resumes.EducationRecord, 0, len(all))
	for _, edu := range all {
		out = append(out, resumes.EducationRecord{
			ID:          edu.ID,
			Institution: edu.Institution,
			Degree:      edu.Degree,
			StartDate:   edu.StartDate,
			EndDate:     edu.EndDate,
			GPA:         edu.GPA,
			Description: edu.Description,
		})
	}
	return out, nil
}

func (a educationAdapter) DeleteByResume(ctx context.Context, resumeID string) error {
	return a.repo.DeleteByResume(ctx, resumeID)
}

type skillAdapter struct {
	repo skills.Repo
}

func (a skillAdapter) ListByResume(ctx context.Context, resumeID string) ([]resumes.SkillRecord, error) {
	all, err := a.repo.ListByResume(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	out := make([]resumes.SkillRecord, 0, len(all))
	for _, s := range all {
		out = append(out, resumes.SkillRecord{
			ID:          s.ID,
			Name:        s.Name,
			Proficiency: s.Proficiency,
			Category:    s.Category,
		})
	}
	return out, nil
}

func (a skillAdapter) DeleteByResume(ctx context.Context, resumeID string) error {
	return a.repo.DeleteByResume(ctx, resumeID)
}

type projectAdapter struct {
	repo projects.Repo
}

func (a projectAdapter) ListByResume(ctx context.Context, resumeID string) ([]resumes.ProjectRecord, error) {
	all, err := a.repo.ListByResume(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	out := make([]resumes.ProjectRecord, 0, len(all))
	for _, p := range all {
		out = append(out, resumes.ProjectRecord{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			Technologies: p.Technologies,
			URL:          p.URL,
			StartDate:    p.StartDate,
			EndDate:      p.EndDate,
		})
	}
	return out, nil
}

func (a projectAdapter) DeleteByResume(ctx context.Context, resumeID string) error {
	return a.repo.DeleteByResume(ctx, resumeID)
}

type certificationAdapter struct {
	repo certifications.Repo
}

func (a certificationAdapter) ListByResume(ctx context.Context, resumeID string) ([]resumes.CertificationRecord, error) {
	all, err := a.repo.ListByResume(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	out := make([]resumes.CertificationRecord, 0, len(all))
	for _, cert := range all {
		out = append(out, resumes.CertificationRecord{
			ID:            cert.ID,
			Name:          cert.Name,
			Issuer:        cert.Issuer,
			IssueDate:     cert.IssueDate,
			ExpiryDate:    cert.ExpiryDate,
			CredentialID:  cert.CredentialID,
			CredentialURL: cert.CredentialURL,
		})
	}
	return out, nil
}

func (a certificationAdapter) DeleteByResume(ctx context.Context, resumeID string) error {
	return a.repo.DeleteByResume(ctx, resumeID)
}
