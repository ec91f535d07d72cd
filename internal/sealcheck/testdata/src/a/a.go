package a

//seal:immutable
type Config struct {
	Name string
	Port int
	Tags []string
}

type Settings struct {
	Name string
}

func directWrites() {
	c := Config{Name: "gw", Port: 80}
	c.Port = 8080   // want `write to immutable Config value`
	c.Port++        // want `write to immutable Config value`
	c.Port += 2     // want `write to immutable Config value`
	c.Tags[0] = "x" // want `write to immutable Config value`
	c = Config{}    // want `reassignment of immutable Config value`
	_ = c

	s := Settings{}
	s.Name = "fine"
	_ = s
}

func pointerWrites() {
	c := Config{}
	p := &c
	p.Port = 1 // want `write to immutable Config value`
	p = &c
	_ = p

	alias := &c.Port
	*alias = 2 // want `write to immutable Config value`
}

func copies(all map[string]Config, list []Config) {
	cp := all["k"]
	cp.Port = 9
	cp = Config{}
	_ = cp

	list[0].Port = 1 // want `write to immutable Config value`
}

func throughContainers(byName map[string]*Config) {
	byName["k"].Port = 2 // want `write to immutable Config value`
}

func waived() {
	c := Config{}
	c.Port = 3 //seal:allow boot-time rewrite
	_ = c
}
