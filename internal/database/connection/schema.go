package connection

// The partial unique index on rentals enforces at most one active rental
// per car, so two concurrent creations for the same car cannot both commit.
const schema = `
CREATE TABLE IF NOT EXISTS cars (
    id            SERIAL PRIMARY KEY,
    brand         TEXT NOT NULL,
    model         TEXT NOT NULL,
    year          INT NOT NULL,
    license_plate TEXT UNIQUE NOT NULL,
    daily_rate    NUMERIC(10, 2) NOT NULL,
    is_available  BOOLEAN NOT NULL DEFAULT TRUE,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS customers (
    id                  SERIAL PRIMARY KEY,
    name                TEXT NOT NULL,
    cpf                 TEXT UNIQUE NOT NULL,
    phone               TEXT NOT NULL,
    email               TEXT UNIQUE NOT NULL,
    has_pending_payment BOOLEAN NOT NULL DEFAULT FALSE,
    created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS rentals (
    id          SERIAL PRIMARY KEY,
    customer_id INT NOT NULL REFERENCES customers (id),
    car_id      INT NOT NULL REFERENCES cars (id),
    start_date  TIMESTAMPTZ NOT NULL,
    end_date    TIMESTAMPTZ NOT NULL,
    total_value NUMERIC(10, 2) NOT NULL,
    status      TEXT NOT NULL DEFAULT 'active',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS payments (
    id             SERIAL PRIMARY KEY,
    rental_id      INT NOT NULL REFERENCES rentals (id),
    amount         NUMERIC(10, 2) NOT NULL,
    payment_method TEXT NOT NULL,
    payment_date   TIMESTAMPTZ NOT NULL,
    status         TEXT NOT NULL DEFAULT 'pending',
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS maintenances (
    id               SERIAL PRIMARY KEY,
    car_id           INT NOT NULL REFERENCES cars (id),
    description      TEXT NOT NULL,
    maintenance_date TIMESTAMPTZ NOT NULL,
    cost             NUMERIC(10, 2) NOT NULL,
    status           TEXT NOT NULL DEFAULT 'scheduled',
    created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_cars_is_available ON cars (is_available);
CREATE INDEX IF NOT EXISTS idx_customers_cpf ON customers (cpf);
CREATE INDEX IF NOT EXISTS idx_rentals_status ON rentals (status);
CREATE INDEX IF NOT EXISTS idx_rentals_period ON rentals (start_date, end_date);
CREATE UNIQUE INDEX IF NOT EXISTS uniq_rentals_active_car ON rentals (car_id) WHERE status = 'active';
CREATE INDEX IF NOT EXISTS idx_payments_rental ON payments (rental_id);
CREATE INDEX IF NOT EXISTS idx_maintenances_car ON maintenances (car_id);
`
