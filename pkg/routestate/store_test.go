package routestate

import (
	"reflect"
	"testing"
)

func TestStoreInitialState(t *testing.T) {
	s := NewStore()
	if got := s.State(); got != (State{}) {
		t.Errorf("initial State = %+v, want zero", got)
	}
	if s.URL() != "" {
		t.Errorf("initial URL = %q, want empty", s.URL())
	}
}

func TestStoreSetStateNotifies(t *testing.T) {
	s := NewStore()
	var got []State
	unsubscribe := s.Subscribe(func(st State) { got = append(got, st) })

	s.SetState(func(st State) State {
		st.URL = "http://localhost/a"
		st.HasLoaded = true
		return st
	})
	// Same value: no notification.
	s.SetState(func(st State) State { return st })

	unsubscribe()
	unsubscribe() // idempotent
	s.SetState(func(st State) State {
		st.URL = "http://localhost/b"
		return st
	})

	want := []State{{URL: "http://localhost/a", HasLoaded: true}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("notifications = %+v, want %+v", got, want)
	}
	if s.URL() != "http://localhost/b" {
		t.Errorf("URL after unsubscribed set = %q", s.URL())
	}
}

func TestStoreLoadedIsMonotonic(t *testing.T) {
	s := NewStore()
	s.load("http://localhost/a")
	s.SetState(func(st State) State {
		return State{URL: st.URL, HasLoaded: false}
	})
	if !s.State().HasLoaded {
		t.Error("HasLoaded reverted to false")
	}
}

func TestStoreSubscribersRunInOrder(t *testing.T) {
	s := NewStore()
	var order []int
	for i := 0; i < 5; i++ {
		s.Subscribe(func(State) { order = append(order, i) })
	}
	s.load("http://localhost/x")
	if !reflect.DeepEqual(order, []int{0, 1, 2, 3, 4}) {
		t.Errorf("order = %v", order)
	}
}

func TestStoreSubscriberMayReadState(t *testing.T) {
	s := NewStore()
	var seen string
	s.Subscribe(func(State) { seen = s.URL() })
	s.load("http://localhost/x")
	if seen != "http://localhost/x" {
		t.Errorf("subscriber saw %q", seen)
	}
}
