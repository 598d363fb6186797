package code4life

import (
	"fmt"
	"sort"
)

const wait = "WAIT"

func goTo(m Module) string { return "GOTO " + string(m) }

// Decide runs the robot state machine for one turn. The robot cycles
// SAMPLES, DIAGNOSIS, MOLECULES, LABORATORY and waits while moving.
func Decide(st *State) string {
	if st.Me.ETA > 0 {
		return wait
	}
	switch st.Me.Target {
	case Samples:
		return atSamples(st)
	case Diagnosis:
		return atDiagnosis(st)
	case Molecules:
		return atMolecules(st)
	case Laboratory:
		return atLaboratory(st)
	}
	return goTo(Diagnosis)
}

// sampleRank picks the rank to draw: richer samples once the robot has the
// expertise to afford them.
func sampleRank(expertise Stock) int {
	switch n := expertise.Total(); {
	case n < 4:
		return 1
	case n < 9:
		return 2
	}
	return 3
}

func atSamples(st *State) string {
	if len(st.Carried(Me)) < MaxSamples {
		return fmt.Sprintf("CONNECT %d", sampleRank(st.Me.Expertise))
	}
	return goTo(Diagnosis)
}

// producible reports whether need can be covered by what the robot holds
// plus what is left on the molecule module, within the free storage.
func producible(need, storage, available Stock) bool {
	missing := 0
	for i := range need {
		if need[i] > storage[i]+available[i] {
			return false
		}
		missing += max(0, need[i]-storage[i])
	}
	return need.Total() <= MaxStorage && missing <= MaxStorage-storage.Total()
}

func atDiagnosis(st *State) string {
	carried := st.Carried(Me)
	for _, s := range carried {
		if !s.Diagnosed() {
			return fmt.Sprintf("CONNECT %d", s.ID)
		}
	}
	// hand back samples the molecule module can no longer cover
	for _, s := range carried {
		if !producible(s.Need(st.Me.Expertise), st.Me.Storage, st.Available) {
			return fmt.Sprintf("CONNECT %d", s.ID)
		}
	}

	if len(carried) < MaxSamples {
		var cloud []Sample
		for _, s := range st.Carried(Cloud) {
			if s.Diagnosed() && producible(s.Need(st.Me.Expertise), st.Me.Storage, st.Available) {
				cloud = append(cloud, s)
			}
		}
		sort.SliceStable(cloud, func(i, j int) bool { return cloud[i].Health > cloud[j].Health })
		if len(cloud) > 0 {
			return fmt.Sprintf("CONNECT %d", cloud[0].ID)
		}
	}

	if len(carried) > 0 {
		return goTo(Molecules)
	}
	return goTo(Samples)
}

// atMolecules fills the carried samples in order: molecules reserved for an
// earlier sample are not counted for a later one.
func atMolecules(st *State) string {
	carried := st.Carried(Me)
	if len(carried) == 0 {
		return goTo(Diagnosis)
	}

	var reserved Stock
	missing := false
	for _, s := range carried {
		need := s.Need(st.Me.Expertise)
		for i := range need {
			reserved[i] += need[i]
			if reserved[i] <= st.Me.Storage[i] {
				continue
			}
			missing = true
			if st.Available[i] > 0 && st.Me.Storage.Total() < MaxStorage {
				return "CONNECT " + moleculeName(i)
			}
		}
	}
	if !missing {
		return goTo(Laboratory)
	}

	// nothing more to pick up here: deliver what is complete or start over
	if len(completed(st)) > 0 {
		return goTo(Laboratory)
	}
	return goTo(Diagnosis)
}

// completed lists carried samples whose cost is fully in storage.
func completed(st *State) []Sample {
	var out []Sample
	for _, s := range st.Carried(Me) {
		if !s.Diagnosed() {
			continue
		}
		need := s.Need(st.Me.Expertise)
		ok := true
		for i := range need {
			if need[i] > st.Me.Storage[i] {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, s)
		}
	}
	return out
}

func atLaboratory(st *State) string {
	if done := completed(st); len(done) > 0 {
		return fmt.Sprintf("CONNECT %d", done[0].ID)
	}
	if len(st.Carried(Me)) > 0 {
		return goTo(Molecules)
	}
	return goTo(Diagnosis)
}
