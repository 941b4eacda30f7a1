package ports

// EnvironmentPort supplies the variables available to URL templates.
type EnvironmentPort interface {
	Load(envFile string) (map[string]string, error)
}
