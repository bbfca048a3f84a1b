package obstacles

import (
	"testing"

	"go.viam.com/test"
)

func TestUpdateForgetIgnore(t *testing.T) {
	m := NewManager(99)

	m.Update(1, 0, 0, 0, 1, 0, 2, 4)
	got, ok := m.Get()[1]
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, got.X, test.ShouldEqual, 0.0)
	test.That(t, got.Width, test.ShouldEqual, 2.0)

	m.Update(1, 5, 5, 0, 1, 0, 2, 4)
	test.That(t, m.Get()[1].X, test.ShouldEqual, 5.0)

	m.Forget(1)
	_, ok = m.Get()[1]
	test.That(t, ok, test.ShouldBeFalse)

	m.Update(99, 1, 1, 0, 1, 0, 1, 1)
	_, ok = m.Get()[99]
	test.That(t, ok, test.ShouldBeFalse)
}

func TestCollisionExistsCounts(t *testing.T) {
	m := NewManager()
	m.Update(1, 0, 50, 0, 1, 0, 4, 4)
	m.Update(2, 0, 50, 0, 1, 0, 4, 4)

	count := m.CollisionExists(0, 50, 0, false)
	test.That(t, count, test.ShouldEqual, 2)

	farCount := m.CollisionExists(1000, 1000, 0, false)
	test.That(t, farCount, test.ShouldEqual, 0)
}

func TestCollisionExistsStrictIsPointwiseGreaterOrEqual(t *testing.T) {
	m := NewManager()
	m.Update(1, 0, 50, 0, 1, 0, 2, 2)

	for _, pt := range []struct{ x, y float64 }{{0, 50}, {1.1, 50}, {0, 51.1}, {5, 5}} {
		loose := m.CollisionExists(pt.x, pt.y, 0, false)
		strict := m.CollisionExists(pt.x, pt.y, 0, true)
		test.That(t, strict, test.ShouldBeGreaterThanOrEqualTo, loose)
	}
}

func TestStrictInflationDoesNotAccumulate(t *testing.T) {
	m := NewManager()
	m.Update(1, 0, 0, 0, 1, 0, 2, 2)

	for i := 0; i < 5; i++ {
		m.CollisionExists(0, 0, 0, true)
	}
	o := m.Get()[1]
	test.That(t, o.Width, test.ShouldEqual, 2.0)
	test.That(t, o.Length, test.ShouldEqual, 2.0)
}

func TestProjectAdvancesCumulatively(t *testing.T) {
	m := NewManager()
	m.Update(1, 0, 0, 0, 1, 0, 1, 1)

	m.Project(10)
	first := *m.Get()[1]
	m.Project(20)
	second := *m.Get()[1]

	test.That(t, first.Time, test.ShouldEqual, 10.0)
	test.That(t, second.Time, test.ShouldEqual, 20.0)
	test.That(t, second.Y, test.ShouldBeGreaterThan, first.Y)
}
