package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del simulador.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Game    GameConfig    `yaml:"game"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// EngineConfig contiene las constantes económicas del motor de simulación.
// Son inputs fijos: el motor las copia al construirse y no vuelve a leerlas.
type EngineConfig struct {
	// Planta y capacidad
	CapacityPerMachine float64 `yaml:"capacity_per_machine"` // unidades/año por máquina
	CapacityPerWorker  float64 `yaml:"capacity_per_worker"`  // unidades/año por trabajador
	MachineCost        float64 `yaml:"machine_cost"`
	MachineLifeYears   float64 `yaml:"machine_life_years"`

	// Economía unitaria
	UnitMaterialCost float64 `yaml:"unit_material_cost"`
	UnitVariableCost float64 `yaml:"unit_variable_cost"`

	// Costes fijos operativos (sin nóminas)
	FixedCostsAnnual      float64 `yaml:"fixed_costs_annual"`
	SalaryPerWorkerAnnual float64 `yaml:"salary_per_worker_annual"`

	// Mercado
	AnnualDemand     float64 `yaml:"annual_demand"`
	PriceSensitivity float64 `yaml:"price_sensitivity"`
	MarketingAlpha   float64 `yaml:"marketing_alpha"`

	// Finanzas
	InterestRateAnnual      float64 `yaml:"interest_rate_annual"`
	TaxRate                 float64 `yaml:"tax_rate"`
	MaxDebtMultipleOfEquity float64 `yaml:"max_debt_multiple_of_equity"`

	// Curva no lineal de demanda mensual para los periodos mensuales.
	// Se normaliza a suma 1 antes de usarse.
	MonthlyDemandWeights []float64 `yaml:"monthly_demand_weights"`
}

// GameConfig controla la partida: empresas, duración y ritmo del modo auto.
type GameConfig struct {
	PlayerName          string   `yaml:"player_name"`
	CompetitorNames     []string `yaml:"competitor_names"`
	TotalPeriods        int      `yaml:"total_periods"`
	MonthlyPeriods      []int    `yaml:"monthly_periods"` // periodos que se simulan mes a mes
	AutoIntervalSeconds int      `yaml:"auto_interval_seconds"`

	// Balance inicial compartido por las cuatro empresas
	InitialCapital  float64 `yaml:"initial_capital"`
	InitialMachines int     `yaml:"initial_machines"`
	InitialWorkers  int     `yaml:"initial_workers"`
}

// StorageConfig controla dónde se persiste el registro de resultados.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Con path vacío no lee ningún archivo: los defaults replican las constantes
// documentadas del juego, así que una config vacía produce la partida canónica.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// AutoInterval devuelve la pausa entre periodos del modo auto como time.Duration.
func (c *Config) AutoInterval() time.Duration {
	return time.Duration(c.Game.AutoIntervalSeconds) * time.Second
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	e := &cfg.Engine
	if e.CapacityPerMachine <= 0 {
		e.CapacityPerMachine = 1000
	}
	if e.CapacityPerWorker <= 0 {
		e.CapacityPerWorker = 300
	}
	if e.MachineCost <= 0 {
		e.MachineCost = 50000
	}
	if e.MachineLifeYears <= 0 {
		e.MachineLifeYears = 10
	}
	if e.UnitMaterialCost <= 0 {
		e.UnitMaterialCost = 8
	}
	if e.UnitVariableCost <= 0 {
		e.UnitVariableCost = 4
	}
	if e.FixedCostsAnnual <= 0 {
		e.FixedCostsAnnual = 210000
	}
	if e.SalaryPerWorkerAnnual <= 0 {
		e.SalaryPerWorkerAnnual = 30000
	}
	if e.AnnualDemand <= 0 {
		e.AnnualDemand = 18000
	}
	if e.PriceSensitivity <= 0 {
		e.PriceSensitivity = 2
	}
	if e.MarketingAlpha <= 0 {
		e.MarketingAlpha = 0.5
	}
	if e.InterestRateAnnual <= 0 {
		e.InterestRateAnnual = 0.06
	}
	if e.TaxRate <= 0 {
		e.TaxRate = 0.25
	}
	if e.MaxDebtMultipleOfEquity <= 0 {
		e.MaxDebtMultipleOfEquity = 2
	}
	if len(e.MonthlyDemandWeights) != 12 {
		e.MonthlyDemandWeights = []float64{
			0.07, 0.075, 0.08, 0.085, 0.09, 0.095,
			0.095, 0.09, 0.085, 0.08, 0.075, 0.07,
		}
	}

	g := &cfg.Game
	if g.PlayerName == "" {
		g.PlayerName = "Jugador"
	}
	if len(g.CompetitorNames) == 0 {
		g.CompetitorNames = []string{"Competidor A", "Competidor B", "Competidor C"}
	}
	if g.TotalPeriods <= 0 {
		g.TotalPeriods = 6
	}
	if len(g.MonthlyPeriods) == 0 {
		g.MonthlyPeriods = []int{5, 6}
	}
	if g.AutoIntervalSeconds <= 0 {
		g.AutoIntervalSeconds = 2
	}
	if g.InitialCapital <= 0 {
		g.InitialCapital = 350000
	}
	if g.InitialMachines <= 0 {
		g.InitialMachines = 5
	}
	if g.InitialWorkers <= 0 {
		g.InitialWorkers = 10
	}

	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "simempresa.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
