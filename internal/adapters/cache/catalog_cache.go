package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"vet-clinic/internal/domain/catalog"
)

// CachedMedicationsRepo decora el repo real de medicamentos con un cache
// read-through en Redis. Cualquier error de Redis degrada a la base, nunca
// falla el request por el cache.
type CachedMedicationsRepo struct {
	real  catalog.MedicationRepository
	redis *redis.Client
	ttl   time.Duration
	log   zerolog.Logger
}

func NewCachedMedicationsRepo(real catalog.MedicationRepository, rdb *redis.Client, log zerolog.Logger) *CachedMedicationsRepo {
	return &CachedMedicationsRepo{
		real:  real,
		redis: rdb,
		ttl:   5 * time.Minute,
		log:   log,
	}
}

func medKey(id string) string        { return "medication:" + id }
func medListKey(vetID string) string { return "medications:vet:" + vetID }
func svcKey(id string) string        { return "service:" + id }
func svcListKey(vetID string) string { return "services:vet:" + vetID }

func (c *CachedMedicationsRepo) GetByID(ctx context.Context, id string) (catalog.Medication, error) {
	key := medKey(id)

	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var m catalog.Medication
		if uerr := json.Unmarshal(data, &m); uerr == nil {
			return m, nil
		}
		c.log.Warn().Str("key", key).Msg("cache entry corrupta, sigo con la base")
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn().Err(err).Msg("redis get falló, sigo con la base")
	}

	m, err := c.real.GetByID(ctx, id)
	if err != nil {
		return catalog.Medication{}, err
	}

	c.set(ctx, key, m)
	return m, nil
}

// GetByName no se cachea: sólo se usa en el chequeo de duplicados del
// create, que necesita leer fresco.
func (c *CachedMedicationsRepo) GetByName(ctx context.Context, vetID, name string) (catalog.Medication, error) {
	return c.real.GetByName(ctx, vetID, name)
}

func (c *CachedMedicationsRepo) ListByVet(ctx context.Context, vetID string) ([]catalog.Medication, error) {
	key := medListKey(vetID)

	data, err := c.redis.Get(ctx, key).Bytes()
	if err == nil {
		var out []catalog.Medication
		if uerr := json.Unmarshal(data, &out); uerr == nil {
			return out, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn().Err(err).Msg("redis get falló, sigo con la base")
	}

	out, err := c.real.ListByVet(ctx, vetID)
	if err != nil {
		return nil, err
	}

	c.set(ctx, key, out)
	return out, nil
}

func (c *CachedMedicationsRepo) Create(ctx context.Context, m catalog.Medication) error {
	c.invalidate(ctx, medListKey(m.VetID))
	return c.real.Create(ctx, m)
}

func (c *CachedMedicationsRepo) Update(ctx context.Context, m catalog.Medication) error {
	c.invalidate(ctx, medKey(m.ID), medListKey(m.VetID))
	return c.real.Update(ctx, m)
}

func (c *CachedMedicationsRepo) Delete(ctx context.Context, id string) error {
	if m, err := c.real.GetByID(ctx, id); err == nil {
		c.invalidate(ctx, medKey(id), medListKey(m.VetID))
	} else {
		c.invalidate(ctx, medKey(id))
	}
	return c.real.Delete(ctx, id)
}

func (c *CachedMedicationsRepo) set(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.log.Warn().Err(err).Msg("no pude serializar para cache")
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("redis set falló")
	}
}

func (c *CachedMedicationsRepo) invalidate(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := c.redis.Del(ctx, key).Err(); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("redis del falló")
		}
	}
}

// CachedServicesRepo es el mismo decorador para servicios. El contador de
// uso invalida el cache igual que cualquier otro write.
type CachedServicesRepo struct {
	real  catalog.ServiceRepository
	redis *redis.Client
	ttl   time.Duration
	log   zerolog.Logger
}

func NewCachedServicesRepo(real catalog.ServiceRepository, rdb *redis.Client, log zerolog.Logger) *CachedServicesRepo {
	return &CachedServicesRepo{
		real:  real,
		redis: rdb,
		ttl:   5 * time.Minute,
		log:   log,
	}
}

func (c *CachedServicesRepo) GetByID(ctx context.Context, id string) (catalog.Service, error) {
	key := svcKey(id)

	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var s catalog.Service
		if uerr := json.Unmarshal(data, &s); uerr == nil {
			return s, nil
		}
		c.log.Warn().Str("key", key).Msg("cache entry corrupta, sigo con la base")
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn().Err(err).Msg("redis get falló, sigo con la base")
	}

	s, err := c.real.GetByID(ctx, id)
	if err != nil {
		return catalog.Service{}, err
	}

	c.set(ctx, key, s)
	return s, nil
}

func (c *CachedServicesRepo) ListByVet(ctx context.Context, vetID string) ([]catalog.Service, error) {
	key := svcListKey(vetID)

	data, err := c.redis.Get(ctx, key).Bytes()
	if err == nil {
		var out []catalog.Service
		if uerr := json.Unmarshal(data, &out); uerr == nil {
			return out, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn().Err(err).Msg("redis get falló, sigo con la base")
	}

	out, err := c.real.ListByVet(ctx, vetID)
	if err != nil {
		return nil, err
	}

	c.set(ctx, key, out)
	return out, nil
}

func (c *CachedServicesRepo) Create(ctx context.Context, s catalog.Service) error {
	c.invalidate(ctx, svcListKey(s.VetID))
	return c.real.Create(ctx, s)
}

func (c *CachedServicesRepo) Update(ctx context.Context, s catalog.Service) error {
	c.invalidate(ctx, svcKey(s.ID), svcListKey(s.VetID))
	return c.real.Update(ctx, s)
}

func (c *CachedServicesRepo) Delete(ctx context.Context, id string) error {
	if s, err := c.real.GetByID(ctx, id); err == nil {
		c.invalidate(ctx, svcKey(id), svcListKey(s.VetID))
	} else {
		c.invalidate(ctx, svcKey(id))
	}
	return c.real.Delete(ctx, id)
}

func (c *CachedServicesRepo) IncrementUsage(ctx context.Context, id string) error {
	if s, err := c.real.GetByID(ctx, id); err == nil {
		c.invalidate(ctx, svcKey(id), svcListKey(s.VetID))
	} else {
		c.invalidate(ctx, svcKey(id))
	}
	return c.real.IncrementUsage(ctx, id)
}

func (c *CachedServicesRepo) set(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.log.Warn().Err(err).Msg("no pude serializar para cache")
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("redis set falló")
	}
}

func (c *CachedServicesRepo) invalidate(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := c.redis.Del(ctx, key).Err(); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("redis del falló")
		}
	}
}
