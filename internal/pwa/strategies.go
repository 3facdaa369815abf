package pwa

import (
	"github.com/jakoblorz/go-pwaforge/internal/models"
)

// strategyUnit is one fetch-interception policy as an independently rendered
// template. Exactly one unit is composed into each emitted worker; the
// others never appear in the output.
type strategyUnit struct {
	// FuncName is the JS identifier the fetch handler dispatches to.
	FuncName string
	// Body is the template of the strategy function definition.
	Body string
}

var strategyUnits = map[models.CacheStrategy]strategyUnit{
	models.CacheFirst: {
		FuncName: "cacheFirst",
		Body: `function cacheFirst(request) {
  return caches.match(request).then((cached) => {
    if (cached) {
      return cached;
    }
    return fetch(request)
      .then((response) => {
        if (response.status === 200 && response.type === 'basic') {
          const copy = response.clone();
          caches.open(CACHE_NAME).then((cache) => cache.put(request, copy));
        }
        return response;
      })
      .catch((err) => offlineFallback(request, err));
  });
}`,
	},

	models.NetworkFirst: {
		FuncName: "networkFirst",
		Body: `function networkFirst(request) {
  return fetch(request)
    .then((response) => {
      if (response.status === 200) {
        const copy = response.clone();
        caches.open(CACHE_NAME).then((cache) => cache.put(request, copy));
      }
      return response;
    })
    .catch((err) => caches.match(request).then((cached) => {
      if (cached) {
        return cached;
      }
      return offlineFallback(request, err);
    }));
}`,
	},

	models.StaleWhileRevalidate: {
		FuncName: "staleWhileRevalidate",
		Body: `function staleWhileRevalidate(request) {
  const network = fetch(request)
    .then((response) => {
      if (response.status === 200) {
        const copy = response.clone();
        caches.open(CACHE_NAME).then((cache) => cache.put(request, copy));
      }
      return response;
    });
  const guarded = network.catch((err) => offlineFallback(request, err));
  guarded.catch(() => {});
  return caches.match(request).then((cached) => cached || guarded);
}`,
	},
}
