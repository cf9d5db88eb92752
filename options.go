package lasr

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver     string // "valkey" or "redis"
	addrs      []string
	password   string
	standalone bool

	keyPrefix    string
	recordFormat string

	workers           int
	parallelThreshold int
}

// WithValkey configures the client to connect to a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithStandalone disables cluster topology discovery.
func WithStandalone() Option {
	return optionFunc(func(c *clientConfig) {
		c.standalone = true
	})
}

// WithKeyPrefix sets the key namespace. Records of collection c are read
// from keys matching "<prefix><c>:*". Defaults to "lasr:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithJSONRecords reads records with JSON.GET instead of GET.
// Requires the JSON module on the server.
func WithJSONRecords() Option {
	return optionFunc(func(c *clientConfig) {
		c.recordFormat = "json"
	})
}

// WithParallelism sets the scoring worker count and the minimum number of
// records before scoring fans out across workers.
func WithParallelism(workers, threshold int) Option {
	return optionFunc(func(c *clientConfig) {
		c.workers = workers
		c.parallelThreshold = threshold
	})
}
