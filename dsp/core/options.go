package core

// ProcessorConfig defines common waveform processing settings.
type ProcessorConfig struct {
	SampleRate   float64 // digitizer sample rate in Hz
	RecordLength int     // samples per waveform record
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns defaults matching a 62.5 MHz digitizer
// with 1024-tick records.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate:   62.5e6,
		RecordLength: 1024,
	}
}

// WithSampleRate sets the digitizer sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithRecordLength sets the number of samples per waveform record.
func WithRecordLength(recordLength int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if recordLength > 0 {
			cfg.RecordLength = recordLength
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
