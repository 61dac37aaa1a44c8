package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	a := NoopAnnotationHooks{}
	a.OnBuild(ctx, 3, 1)
	a.OnResolve(ctx, "peak", true)
	a.OnTooltipShow(ctx, "peak")

	r := NoopRenderHooks{}
	r.OnRenderStart(ctx, []string{"svg"})
	r.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Annotations().(NoopAnnotationHooks); !ok {
		t.Error("Annotations() should return NoopAnnotationHooks by default")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customAnnotations := &testAnnotationHooks{}
	SetAnnotationHooks(customAnnotations)
	if Annotations() != customAnnotations {
		t.Error("SetAnnotationHooks should set custom hooks")
	}

	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Annotations().(NoopAnnotationHooks); !ok {
		t.Error("Reset() should restore NoopAnnotationHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testAnnotationHooks{}
	SetAnnotationHooks(custom)
	SetAnnotationHooks(nil)

	if Annotations() != custom {
		t.Error("SetAnnotationHooks(nil) should be ignored")
	}

	Reset()
}

type testAnnotationHooks struct{ NoopAnnotationHooks }
type testRenderHooks struct{ NoopRenderHooks }
type testCacheHooks struct{ NoopCacheHooks }
