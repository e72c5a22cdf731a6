package config

import (
	"os"
	"testing"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("ODEINT_SYSTEM", "lorenz")
	t.Setenv("ODEINT_DT", "0.002")
	t.Setenv("ODEINT_INITIAL", "1,2,3")
	t.Setenv("ODEINT_PARAMS", "sigma:10,rho:28,beta:2")

	cfg := DefaultConfig()
	if err := ApplyEnv(cfg); err != nil {
		t.Fatal(err)
	}

	if cfg.System != "lorenz" {
		t.Errorf("system = %s", cfg.System)
	}
	if cfg.Dt != 0.002 {
		t.Errorf("dt = %v", cfg.Dt)
	}
	if len(cfg.Initial) != 3 || cfg.Initial[2] != 3 {
		t.Errorf("initial = %v", cfg.Initial)
	}
	if cfg.Params["beta"] != 2 || len(cfg.Params) != 3 {
		t.Errorf("params = %v", cfg.Params)
	}
	if cfg.Integrator != RK4 || cfg.Duration != DefaultDuration {
		t.Error("unset variables must not override the config")
	}
}

func TestApplyEnvBadValue(t *testing.T) {
	t.Setenv("ODEINT_STEPS", "many")

	if err := ApplyEnv(DefaultConfig()); err == nil {
		t.Error("expected parse error")
	}
}

func TestParseParams(t *testing.T) {
	got, err := ParseParams([]string{"sigma=10", " rho = 28 ", "beta=2.6666"})
	if err != nil {
		t.Fatal(err)
	}
	if got["sigma"] != 10 || got["rho"] != 28 || got["beta"] != 2.6666 {
		t.Errorf("unexpected params %v", got)
	}

	if got, err := ParseParams(nil); err != nil || got != nil {
		t.Errorf("empty input: %v, %v", got, err)
	}

	for _, bad := range [][]string{{"sigma"}, {"=1"}, {"sigma=x"}, {"k=1", "k=2"}} {
		if _, err := ParseParams(bad); err == nil {
			t.Errorf("expected error for %v", bad)
		}
	}
}

func TestParseState(t *testing.T) {
	got, err := ParseState("4e12, 0, 0, 474")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 4 || got[0] != 4e12 || got[3] != 474 {
		t.Errorf("unexpected state %v", got)
	}

	if _, err := ParseState("1,,2"); err == nil {
		t.Error("expected error for empty component")
	}
	if got, _ := ParseState(" "); got != nil {
		t.Errorf("blank input gave %v", got)
	}
}
