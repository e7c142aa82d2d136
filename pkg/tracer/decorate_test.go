package tracer_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/gotracer/pkg/tracer"
)

func double(args ...any) (any, error) {
	return args[0].(int) * 2, nil
}

var errBoom = errors.New("boom")

func explode(args ...any) (any, error) {
	return nil, errBoom
}

var _ = Describe("TraceCalls", func() {
	var (
		t    *tracer.Tracer
		sink *memHandler
	)

	BeforeEach(func() {
		t = tracer.New()
		sink = &memHandler{}
		t.Registry().Get("gotracer.calls").AddHandler(sink)
	})

	It("should return the wrapped function's value unchanged when enabled", func() {
		t.Enable()
		wrapped := t.TraceCalls("gotracer.calls")(double)

		result, err := wrapped(21)
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal(42))
	})

	It("should return the wrapped function's value unchanged when disabled", func() {
		t.Disable()
		wrapped := t.TraceCalls("gotracer.calls")(double)

		result, err := wrapped(21)
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal(42))
	})

	It("should emit exactly two debug records per call when enabled", func() {
		t.Enable()
		wrapped := t.TraceCalls("gotracer.calls")(double)

		_, err := wrapped(1)
		Expect(err).NotTo(HaveOccurred())

		records := sink.Records()
		Expect(records).To(HaveLen(2))
		Expect(records[0].Message).To(ContainSubstring("calling"))
		Expect(records[0].Message).To(ContainSubstring("double"))
		Expect(records[1].Message).To(ContainSubstring("returned: 2"))
	})

	It("should emit nothing when disabled", func() {
		t.Disable()
		wrapped := t.TraceCalls("gotracer.calls")(double)

		_, err := wrapped(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(sink.Records()).To(BeEmpty())
	})

	It("should log the call arguments", func() {
		t.Enable()
		wrapped := t.TraceCalls("gotracer.calls")(double)

		_, err := wrapped(7)
		Expect(err).NotTo(HaveOccurred())
		Expect(sink.Records()[0].Message).To(ContainSubstring("[7]"))
	})

	It("should honor decorators created before the tracer was enabled", func() {
		wrapped := t.TraceCalls("gotracer.calls")(double)

		t.Enable()
		_, err := wrapped(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(sink.Records()).To(HaveLen(2))
	})

	It("should use the flag captured at call start for both log points", func() {
		t.Enable()

		toggling := func(args ...any) (any, error) {
			t.Disable() // mid-call toggle must not suppress the return log
			return "done", nil
		}
		wrapped := t.TraceCallsNamed("gotracer.calls", "toggling")(toggling)

		_, err := wrapped()
		Expect(err).NotTo(HaveOccurred())
		Expect(sink.Records()).To(HaveLen(2))
	})

	It("should not log the return when tracing was off at call start", func() {
		t.Disable()

		toggling := func(args ...any) (any, error) {
			t.Enable()
			return "done", nil
		}
		wrapped := t.TraceCallsNamed("gotracer.calls", "toggling")(toggling)

		_, err := wrapped()
		Expect(err).NotTo(HaveOccurred())
		Expect(sink.Records()).To(BeEmpty())
	})

	It("should propagate errors unmodified and skip the return log", func() {
		t.Enable()
		wrapped := t.TraceCalls("gotracer.calls")(explode)

		_, err := wrapped()
		Expect(err).To(MatchError(errBoom))
		Expect(sink.Records()).To(HaveLen(1)) // pre-call record only
	})

	It("should use the explicit name from TraceCallsNamed", func() {
		t.Enable()
		wrapped := t.TraceCallsNamed("gotracer.calls", "scale")(func(args ...any) (any, error) {
			return nil, nil
		})

		_, err := wrapped()
		Expect(err).NotTo(HaveOccurred())
		Expect(sink.Records()[0].Message).To(ContainSubstring("scale"))
	})
})

var _ = Describe("TraceExceptions", func() {
	var (
		t    *tracer.Tracer
		sink *memHandler
	)

	BeforeEach(func() {
		t = tracer.New()
		sink = &memHandler{}
		t.Registry().Get("gotracer.errors").AddHandler(sink)
	})

	It("should pass successful results through without logging", func() {
		t.Enable()
		wrapped := t.TraceExceptions("gotracer.errors")(double)

		result, err := wrapped(5)
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal(10))
		Expect(sink.Records()).To(BeEmpty())
	})

	It("should log the error once and return it identical", func() {
		t.Enable()
		wrapped := t.TraceExceptions("gotracer.errors")(explode)

		_, err := wrapped()
		Expect(err).To(MatchError(errBoom))

		records := sink.Records()
		Expect(records).To(HaveLen(1))
		Expect(records[0].Message).To(ContainSubstring("boom"))
		Expect(records[0].Message).To(ContainSubstring("explode"))
	})

	It("should log errors even while tracing is disabled", func() {
		t.Disable()
		wrapped := t.TraceExceptions("gotracer.errors")(explode)

		_, err := wrapped()
		Expect(err).To(MatchError(errBoom))
		Expect(sink.Records()).To(HaveLen(1))
	})

	It("should log and re-raise panics with the same value", func() {
		wrapped := t.TraceExceptionsNamed("gotracer.errors", "kaboom")(func(args ...any) (any, error) {
			panic("kaboom")
		})

		Expect(func() { _, _ = wrapped() }).To(PanicWith("kaboom"))

		records := sink.Records()
		Expect(records).To(HaveLen(1))
		Expect(records[0].Message).To(ContainSubstring("kaboom"))
	})
})
