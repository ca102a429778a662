package storage

const schemaSQL = `
CREATE TABLE IF NOT EXISTS categories (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name VARCHAR(255),
    url TEXT,
    parent_id INTEGER REFERENCES categories(id),
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_categories_parent ON categories(parent_id);
CREATE INDEX IF NOT EXISTS idx_categories_url ON categories(url);

CREATE TABLE IF NOT EXISTS products (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name VARCHAR(255),
    brand VARCHAR(255),
    price REAL,
    is_available INTEGER NOT NULL DEFAULT 0,
    cat_id INTEGER NOT NULL REFERENCES categories(id),
    review_count INTEGER NOT NULL DEFAULT 0,
    url TEXT,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_products_category ON products(cat_id);
`
