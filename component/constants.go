package component

// Component name constants.
const (
	ComponentConfig  = "config"
	ComponentLogger  = "logger"
	ComponentEmitter = "emitter"
)
