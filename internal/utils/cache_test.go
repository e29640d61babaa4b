package utils

import (
	"sync"
	"testing"
	"time"
)

func TestGetCacheSingleton(t *testing.T) {
	const callers = 16
	instances := make([]*GlobalCache, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			instances[i] = GetCache()
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		if instances[i] != instances[0] {
			t.Fatal("GetCache returned different instances to concurrent callers")
		}
	}
}

func TestCacheExpiry(t *testing.T) {
	c := GetCache()

	c.Set("k", "v", time.Minute)
	if got := c.Get("k"); got != "v" {
		t.Errorf("Get = %v, want v", got)
	}

	c.Set("gone", "v", -time.Second)
	if got := c.Get("gone"); got != nil {
		t.Errorf("expired entry returned %v, want nil", got)
	}

	c.Delete("k")
	if got := c.Get("k"); got != nil {
		t.Errorf("deleted entry returned %v, want nil", got)
	}
}
